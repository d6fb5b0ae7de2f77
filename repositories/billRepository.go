package repositories

import (
	"DentaBill/cache"
	"DentaBill/database"
	"DentaBill/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BillCacheExpiry = 7 * 24 * time.Hour
)

// ErrBillNotFound is returned when no tenant's collection contains the
// requested bill ID.
var ErrBillNotFound = errors.New("bill not found")

type BillRepository struct {
	cache *cache.Cache
}

func NewBillRepository(cache *cache.Cache) *BillRepository {
	return &BillRepository{cache: cache}
}

// Create persists a new bill for the tenant. Line items are immutable after
// this point; the creation timestamp is server-assigned. Consultation
// amounts are stored as given; the minimum-total rule lives in the service.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	bill.ID = uuid.New().String()
	if bill.Status == "" {
		bill.Status = models.BillUnpaid
	}

	lockKey := fmt.Sprintf("bill_lock:%s", bill.ID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := database.DB.Create(bill).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return r.cache.DeleteBatch(ctx, r.getBillCacheKey(bill.ID), r.getTenantBillsCacheKey(bill.DentistID))
}

// GetByID fetches a bill within the tenant's scope.
func (r *BillRepository) GetByID(ctx context.Context, dentistID, id string) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	cachedBill, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBill != "" {
		var bill models.Bill
		if err := json.Unmarshal([]byte(cachedBill), &bill); err == nil && bill.DentistID == dentistID {
			return &bill, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get bill from cache: %v", err)
	}

	var bill models.Bill
	err = database.DB.
		First(&bill, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	r.cacheBill(ctx, &bill)
	return &bill, nil
}

// FindAcrossTenants looks a bill up by ID without tenant context, returning
// the bill with its owning dentist ID attached. This walks every tenant's
// bills (O(tenants), no index) and exists only for the public bill
// link path; it is unsuitable for large tenant counts.
func (r *BillRepository) FindAcrossTenants(ctx context.Context, id string) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	cachedBill, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBill != "" {
		var bill models.Bill
		if err := json.Unmarshal([]byte(cachedBill), &bill); err == nil {
			return &bill, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get bill from cache: %v", err)
	}

	var dentistIDs []string
	if err := database.DB.Model(&models.Dentist{}).Pluck("id", &dentistIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	for _, dentistID := range dentistIDs {
		var bill models.Bill
		err := database.DB.First(&bill, "id = ? AND dentist_id = ?", id, dentistID).Error
		if err == nil {
			r.cacheBill(ctx, &bill)
			return &bill, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to scan tenant %s: %w", dentistID, err)
		}
	}
	return nil, ErrBillNotFound
}

// GetAllForDentist returns every bill of the tenant, newest first.
func (r *BillRepository) GetAllForDentist(ctx context.Context, dentistID string) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getTenantBillsCacheKey(dentistID)
	cachedBills, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBills != "" {
		var bills []models.Bill
		if err := json.Unmarshal([]byte(cachedBills), &bills); err == nil {
			return bills, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get bills from cache: %v", err)
	}

	var bills []models.Bill
	err = database.DB.
		Where("dentist_id = ?", dentistID).
		Order("created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all bills: %w", err)
	}

	billsJSON, err := json.Marshal(bills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bills: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, billsJSON, BillCacheExpiry); err != nil {
		log.Printf("Failed to set bills in cache: %v", err)
	}

	return bills, nil
}

// GetByPatientName returns the tenant's bills for one patient. The filter
// runs client-side over the full fetch, fine at per-clinic volumes but not
// built to scale past them.
func (r *BillRepository) GetByPatientName(ctx context.Context, dentistID, patientName string) ([]models.Bill, error) {
	bills, err := r.GetAllForDentist(ctx, dentistID)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(patientName))
	var matched []models.Bill
	for _, b := range bills {
		if strings.ToLower(strings.TrimSpace(b.PatientName)) == want {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetAllBills returns every bill across all tenants (admin dashboard).
func (r *BillRepository) GetAllBills(ctx context.Context) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bills []models.Bill
	err := database.DB.Order("created_at DESC").Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all bills: %w", err)
	}
	return bills, nil
}

// MarkPaid sets the bill's payment status to paid. Calling it on an already
// paid bill is a no-op, not an error; there is no reverse transition.
func (r *BillRepository) MarkPaid(ctx context.Context, dentistID, id string) error {
	lockKey := fmt.Sprintf("bill_lock:%s", id)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var bill models.Bill
	err = database.DB.First(&bill, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBillNotFound
		}
		return fmt.Errorf("failed to get bill: %w", err)
	}

	next, changed := markPaidStatus(bill.Status)
	if !changed {
		return nil
	}

	result := database.DB.Model(&models.Bill{}).
		Where("id = ? AND dentist_id = ?", id, dentistID).
		Update("status", next)
	if result.Error != nil {
		return fmt.Errorf("failed to mark bill paid: %w", result.Error)
	}

	return r.cache.DeleteBatch(ctx, r.getBillCacheKey(id), r.getTenantBillsCacheKey(dentistID))
}

// markPaidStatus computes the MarkPaid transition: every status moves to
// paid, and an already paid bill reports no change so the call stays a
// no-op. There is no reverse transition.
func markPaidStatus(current string) (next string, changed bool) {
	return models.BillPaid, current != models.BillPaid
}

func (r *BillRepository) DeleteAllCache(ctx context.Context, dentistID string) error {
	return r.cache.DeleteAll(ctx, r.getTenantBillsCacheKey(dentistID))
}

func (r *BillRepository) cacheBill(ctx context.Context, bill *models.Bill) {
	billJSON, err := json.Marshal(bill)
	if err != nil {
		log.Printf("Failed to marshal bill: %v", err)
		return
	}
	if err := r.cache.Set(ctx, r.getBillCacheKey(bill.ID), billJSON, BillCacheExpiry); err != nil {
		log.Printf("Failed to set bill in cache: %v", err)
	}
}

func (r *BillRepository) getBillCacheKey(id string) string {
	return fmt.Sprintf("bill_cache:%s", id)
}

func (r *BillRepository) getTenantBillsCacheKey(dentistID string) string {
	return fmt.Sprintf("bills_cache:%s", dentistID)
}
