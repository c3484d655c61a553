package postgres

import (
	"testing"
	"time"

	"github.com/bidquo/rfq-marketplace/internal/rfq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRFQRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RFQRepository Suite")
}

type SQLiteRFQ struct {
	ID          int64      `gorm:"primaryKey"`
	BuyerID     int64      `gorm:"column:buyer_id;not null"`
	CompanyID   int64      `gorm:"column:company_id;not null"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"column:description"`
	Category    string     `gorm:"column:category"`
	Quantity    int64      `gorm:"column:quantity"`
	Status      string     `gorm:"column:status;default:'open'"`
	Deadline    *time.Time `gorm:"column:deadline"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (SQLiteRFQ) TableName() string {
	return "rfqs"
}

var _ = Describe("RFQRepository", func() {
	var (
		db   *gorm.DB
		repo *RFQRepository
	)

	newRFQ := func(buyerID int64, title string) *rfq.RFQ {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		return &rfq.RFQ{
			BuyerID:   buyerID,
			CompanyID: 10,
			Title:     title,
			Category:  "fasteners",
			Quantity:  5000,
			Status:    rfq.StatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRFQ{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewRFQRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create and GetByID", func() {
		It("persists an RFQ and copies back the assigned id", func() {
			// Given
			q := newRFQ(1, "5000x M8 hex bolts")

			// When
			err := repo.Create(q)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(q.ID).To(BeNumerically(">", 0))

			loaded, err := repo.GetByID(q.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).NotTo(BeNil())
			Expect(loaded.Title).To(Equal("5000x M8 hex bolts"))
			Expect(loaded.BuyerID).To(Equal(int64(1)))
			Expect(loaded.Status).To(Equal(rfq.StatusOpen))
		})

		It("returns nil without error for an unknown id", func() {
			loaded, err := repo.GetByID(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())
		})
	})

	Describe("Update", func() {
		It("persists a status transition", func() {
			q := newRFQ(1, "5000x M8 hex bolts")
			Expect(repo.Create(q)).To(Succeed())

			q.Status = rfq.StatusClosed
			Expect(repo.Update(q)).To(Succeed())

			loaded, err := repo.GetByID(q.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal(rfq.StatusClosed))
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			open := newRFQ(1, "5000x M8 hex bolts")
			Expect(repo.Create(open)).To(Succeed())

			newer := newRFQ(1, "200x steel plates")
			newer.CreatedAt = newer.CreatedAt.Add(time.Hour)
			Expect(repo.Create(newer)).To(Succeed())

			closed := newRFQ(2, "closed request")
			closed.Status = rfq.StatusClosed
			Expect(repo.Create(closed)).To(Succeed())
		})

		It("ListOpen returns only open requests, newest first", func() {
			rows, err := repo.ListOpen(20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Title).To(Equal("200x steel plates"))
			Expect(rows[1].Title).To(Equal("5000x M8 hex bolts"))
		})

		It("ListOpen honors limit and offset", func() {
			rows, err := repo.ListOpen(1, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Title).To(Equal("5000x M8 hex bolts"))
		})

		It("ListByBuyer includes closed requests", func() {
			rows, err := repo.ListByBuyer(2, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Status).To(Equal(rfq.StatusClosed))
		})
	})
})
