package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

const tableName = "training_bookings"

const minutesPerDay = 24 * 60

var selectColumns = []string{
	"id",
	"platform",
	"attendee_name",
	"attendee_email",
	"attendee_phone",
	"attendee_company",
	"scheduled_date",
	"start_time",
	"end_time",
	"duration",
	"time_zone",
	"status",
	"trainer_email",
	"notes",
	"meeting_status",
	"meeting_join_url",
	"meeting_event_id",
	"created_at",
	"updated_at",
}

// Repository хранилище бронирований на PostgreSQL
type Repository struct {
	db             DBExecutor
	paddingMinutes int
}

// NewRepository создает новый экземпляр репозитория бронирований.
// paddingMinutes - буфер до и после каждого бронирования, учитывается при проверке пересечений.
func NewRepository(db DBExecutor, paddingMinutes int) *Repository {
	return &Repository{db: db, paddingMinutes: paddingMinutes}
}

// GetByDate возвращает запланированные бронирования на дату, отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"scheduled_date": date.Format(domain.DateFormat),
			"status":         domain.StatusScheduled,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Create сохраняет новое бронирование.
// Сначала ищет пересечение с существующими бронированиями с учётом отступа, затем вставляет строку
// с blocked_minutes = [start, end + padding). Exclusion constraint по этому диапазону гарантирует
// отсутствие пересечений даже при параллельных вставках.
// Должен вызываться внутри сериализуемой транзакции (txmanager.DoSerializable).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	start := booking.StartTime.Minutes()
	end := booking.EndTime.Minutes()
	if start < 0 || end < 0 || start >= end {
		return nil, fmt.Errorf("%w: Create - invalid interval %s-%s", ErrInvalidData, booking.StartTime, booking.EndTime)
	}

	conflict, err := r.hasConflict(ctx, executor, booking.Date, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("%w: Create - %s %s-%s", ErrSlotConflict,
			booking.Date.Format(domain.DateFormat), booking.StartTime, booking.EndTime)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"platform",
			"attendee_name",
			"attendee_email",
			"attendee_phone",
			"attendee_company",
			"scheduled_date",
			"start_time",
			"end_time",
			"duration",
			"time_zone",
			"status",
			"trainer_email",
			"notes",
			"blocked_minutes",
			"meeting_status",
		).
		Values(
			booking.Platform,
			booking.Attendee.Name,
			booking.Attendee.Email,
			booking.Attendee.Phone,
			booking.Attendee.Company,
			booking.Date.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.TimeZone,
			booking.Status,
			booking.OrganizerEmail,
			booking.Notes,
			squirrel.Expr("int4range(?, ?)", start, end+r.paddingMinutes),
			booking.MeetingStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ClassifyError(err), err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// hasConflict проверяет, есть ли запланированное бронирование [bs, be) такое, что start < be + padding и end > bs - padding
func (r *Repository) hasConflict(ctx context.Context, executor DBExecutor, date time.Time, start, end int) (bool, error) {
	lower := types.MustFromMinutes(max(start-r.paddingMinutes, 0))
	upper := types.MustFromMinutes(min(end+r.paddingMinutes, minutesPerDay))

	selectBuilder := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{
			"scheduled_date": date.Format(domain.DateFormat),
			"status":         domain.StatusScheduled,
		}).
		Where(squirrel.Gt{"end_time": lower}).
		Where(squirrel.Lt{"start_time": upper}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: hasConflict - build select query: %v", ErrBuildQuery, err)
	}

	var id uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: hasConflict - execute query: %v", ClassifyError(err), err)
	}

	return true, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateMeeting сохраняет состояние удалённой встречи для бронирования
func (r *Repository) UpdateMeeting(ctx context.Context, id uuid.UUID, status domain.MeetingStatus, joinURL, eventID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("meeting_status", status).
		Set("meeting_join_url", joinURL).
		Set("meeting_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateMeeting - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateMeeting - execute update: %v", ClassifyError(err), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateMeeting - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetStats считает бронирования за период [from, to] в разрезе платформ и статусов
func (r *Repository) GetStats(ctx context.Context, from, to time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("platform", "status", "COUNT(*)").
		From(tableName).
		Where(squirrel.GtOrEq{"scheduled_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"scheduled_date": to.Format(domain.DateFormat)}).
		GroupBy("platform", "status").
		OrderBy("platform ASC", "status ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.BookingStats{
		From:       from,
		To:         to,
		ByPlatform: make(map[string]int),
		ByStatus:   make(map[domain.BookingStatus]int),
	}

	for rows.Next() {
		var (
			platform string
			status   domain.BookingStatus
			count    int
		)
		if err := rows.Scan(&platform, &status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStats - scan row: %v", ErrScanRow, err)
		}
		stats.Total += count
		stats.ByPlatform[platform] += count
		stats.ByStatus[status] += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStats - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Platform,
		&booking.Attendee.Name,
		&booking.Attendee.Email,
		&booking.Attendee.Phone,
		&booking.Attendee.Company,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.TimeZone,
		&booking.Status,
		&booking.OrganizerEmail,
		&booking.Notes,
		&booking.MeetingStatus,
		&booking.MeetingJoinURL,
		&booking.MeetingEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результат запроса в список бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
