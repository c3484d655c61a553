package postgres

import (
	"testing"
	"time"

	"github.com/bidquo/rfq-marketplace/internal/category"
	categoryDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCategoryRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CategoryRepository Suite")
}

type SQLiteRFQCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteRFQCategory) TableName() string {
	return "rfq_categories"
}

var _ = Describe("CategoryRepository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRFQCategory{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewCategoryRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("creates and lists categories sorted by name", func() {
		Expect(repo.Create(&categoryDatamodel.RFQCategory{Name: "packaging", IsActive: true})).To(Succeed())
		Expect(repo.Create(&categoryDatamodel.RFQCategory{Name: "electronics", IsActive: true})).To(Succeed())

		rows, err := repo.GetAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Name).To(Equal("electronics"))
		Expect(rows[1].Name).To(Equal("packaging"))
	})

	It("finds a category by name", func() {
		Expect(repo.Create(&categoryDatamodel.RFQCategory{Name: "fasteners", IsActive: true})).To(Succeed())

		row, err := repo.GetByName("fasteners")
		Expect(err).NotTo(HaveOccurred())
		Expect(row).NotTo(BeNil())
		Expect(row.IsActive).To(BeTrue())

		missing, err := repo.GetByName("unobtainium")
		Expect(err).NotTo(HaveOccurred())
		Expect(missing).To(BeNil())
	})

	It("deactivates instead of deleting", func() {
		row := &categoryDatamodel.RFQCategory{Name: "fasteners", IsActive: true}
		Expect(repo.Create(row)).To(Succeed())

		Expect(repo.Deactivate(row.ID)).To(Succeed())

		loaded, err := repo.GetByName("fasteners")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).NotTo(BeNil())
		Expect(loaded.IsActive).To(BeFalse())
	})
})
