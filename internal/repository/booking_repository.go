package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pharmflow/pharmflow/internal/domain/booking"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, booking.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

func (r *BookingRepository) ListForDay(ctx context.Context, serviceID uuid.UUID, day time.Time) ([]*booking.Booking, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	var bookings []*booking.Booking
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status <> ? AND deleted_at IS NULL",
			serviceID, from, to, booking.StatusCancelled).
		Order("scheduled_at ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("listing bookings for day: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) List(ctx context.Context, q *booking.ListBookingsQuery) (*booking.PagedBookings, error) {
	tx := r.db.WithContext(ctx).Model(&booking.Booking{}).Where("deleted_at IS NULL")

	if q.ServiceID != nil {
		tx = tx.Where("service_id = ?", *q.ServiceID)
	}
	if q.PharmacyID != nil {
		tx = tx.Where("pharmacy_id = ?", *q.PharmacyID)
	}
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.DateFrom != nil {
		tx = tx.Where("scheduled_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		tx = tx.Where("scheduled_at < ?", *q.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}

	var bookings []*booking.Booking
	err := tx.
		Order("scheduled_at ASC, id ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &booking.PagedBookings{
		Bookings:   bookings,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

// translateSlotConflict maps the partial unique index on confirmed
// (service_id, scheduled_at) to the domain conflict error so callers can
// re-query and offer the waitlist.
func translateSlotConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return booking.ErrSlotOccupied
	}
	return fmt.Errorf("persisting booking: %w", err)
}
