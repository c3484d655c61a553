package postgres

import (
	"time"

	delegationDatamodel "github.com/bidquo/rfq-marketplace/internal/core/datamodel/delegation"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
	"gorm.io/gorm"
)

// DelegationRepository implements delegation.RepositoryAPI using GORM
type DelegationRepository struct {
	db *gorm.DB
}

func NewDelegationRepository(db *gorm.DB) delegation.RepositoryAPI {
	return &DelegationRepository{db: db}
}

func (r *DelegationRepository) Create(row *delegationDatamodel.Delegation) error {
	return r.db.Create(row).Error
}

func (r *DelegationRepository) GetByID(id int64) (*delegationDatamodel.Delegation, error) {
	var row delegationDatamodel.Delegation
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpdateGuarded writes the updates only if updated_at is unchanged since the
// caller read the row. Single-row compare-and-swap so concurrent updates to
// the same grant cannot drop each other.
func (r *DelegationRepository) UpdateGuarded(id int64, expectedUpdatedAt time.Time, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&delegationDatamodel.Delegation{}).
		Where("id = ? AND updated_at = ?", id, expectedUpdatedAt).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DelegationRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&delegationDatamodel.Delegation{}).Error
}

func (r *DelegationRepository) ListFrom(userID int64) ([]*delegationDatamodel.Delegation, error) {
	var rows []*delegationDatamodel.Delegation
	err := r.db.Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *DelegationRepository) ListTo(userID int64) ([]*delegationDatamodel.Delegation, error) {
	var rows []*delegationDatamodel.Delegation
	err := r.db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindForSubject returns the candidate grants for an effective-permission
// check. Liveness and resource-scope filtering stay in the engine so that
// expiry is evaluated against a single clock.
func (r *DelegationRepository) FindForSubject(toUserID int64, resourceType, permission string) ([]*delegationDatamodel.Delegation, error) {
	var rows []*delegationDatamodel.Delegation
	err := r.db.
		Where("to_user_id = ? AND resource_type = ? AND permission = ?", toUserID, resourceType, permission).
		Find(&rows).Error
	return rows, err
}
