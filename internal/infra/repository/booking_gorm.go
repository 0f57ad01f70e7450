package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
	"github.com/sparklewash/carwash-booking/internal/httperr"
	"github.com/sparklewash/carwash-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		First(&svc, serviceID).Error; err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / slot cap)
// --------------------------------------------------

func (r *BookingGormRepository) CreateWithSlotCheck(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Serialize concurrent attempts on the same (date, time) pair.
		// A plain count-then-insert races: two requests can both read
		// count=4 and both insert. The transaction-scoped advisory lock
		// makes the second attempt wait and observe the first insert.
		// sqlite (tests) has a single writer, no lock needed there.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?)",
				domain.SlotKey(b.BookingDate, b.BookingTime),
			).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.Booking{}).
			Where(
				"booking_date = ? AND booking_time = ? AND status <> ?",
				b.BookingDate, b.BookingTime, string(domain.StatusCancelled),
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= domain.SlotCapacity {
			return httperr.ErrBusiness("slot_full")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	bookingID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Booking{}, bookingID).Error
}

// --------------------------------------------------
// Aggregation
// --------------------------------------------------

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
) (domain.StatusCounts, error) {
	return r.countByStatus(ctx, r.db.WithContext(ctx).Model(&models.Booking{}))
}

func (r *BookingGormRepository) CountUserByStatus(
	ctx context.Context,
	userID uint,
) (domain.StatusCounts, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID)
	return r.countByStatus(ctx, q)
}

func (r *BookingGormRepository) countByStatus(
	_ context.Context,
	q *gorm.DB,
) (domain.StatusCounts, error) {

	var rows []struct {
		Status string
		N      int64
	}

	if err := q.
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return domain.StatusCounts{}, err
	}

	var counts domain.StatusCounts
	for _, row := range rows {
		counts.Total += row.N
		switch domain.Status(row.Status) {
		case domain.StatusPending:
			counts.Pending = row.N
		case domain.StatusConfirmed:
			counts.Confirmed = row.N
		case domain.StatusInProgress:
			counts.InProgress = row.N
		case domain.StatusCompleted:
			counts.Completed = row.N
		case domain.StatusCancelled:
			counts.Cancelled = row.N
		}
	}

	return counts, nil
}

func (r *BookingGormRepository) CompletedRevenue(
	ctx context.Context,
) (float64, error) {

	var revenue float64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("COALESCE(SUM(price), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *BookingGormRepository) SlotOccupancy(
	ctx context.Context,
	date string,
) (map[string]int, error) {

	var rows []struct {
		BookingTime string
		N           int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("booking_time, COUNT(*) AS n").
		Where(
			"booking_date = ? AND status <> ?",
			date, string(domain.StatusCancelled),
		).
		Group("booking_time").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	occupancy := make(map[string]int, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		occupancy[slot] = 0
	}
	for _, row := range rows {
		occupancy[row.BookingTime] = row.N
	}

	return occupancy, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
