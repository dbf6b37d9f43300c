package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	bookingRepo "slotbook/database/repository/booking"
	slotRepo "slotbook/database/repository/slot"
)

// fakeStore backs both repositories so the coordinator semantics can be
// reproduced in memory: the claim and release operations mutate booking
// and slot under one lock, exactly one concurrent claimer wins.
type fakeStore struct {
	mu       sync.Mutex
	slots    map[string]*models.Slot
	bookings map[string]*models.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[string]*models.Slot),
		bookings: make(map[string]*models.Booking),
	}
}

type fakeSlots struct{ store *fakeStore }

func (r *fakeSlots) Create(_ context.Context, slot *models.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	cp := *slot
	r.store.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlots) GetByID(_ context.Context, id string) (*models.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *slot
	return &cp, nil
}

func (r *fakeSlots) Update(_ context.Context, slot *models.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *slot
	r.store.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlots) DeleteByID(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.slots, id)
	return nil
}

func (r *fakeSlots) FindAll(_ context.Context) ([]models.Slot, error)           { return nil, nil }
func (r *fakeSlots) FindAvailable(_ context.Context, _ time.Time) ([]models.Slot, error) {
	return nil, nil
}
func (r *fakeSlots) FindByCreator(_ context.Context, _ string) ([]models.Slot, error) {
	return nil, nil
}
func (r *fakeSlots) FindByDateRange(_ context.Context, _, _ time.Time) ([]models.Slot, error) {
	return nil, nil
}
func (r *fakeSlots) SetBookingCount(_ context.Context, _ string, _ int) error { return nil }
func (r *fakeSlots) Stats(_ context.Context) (*models.SlotStats, error)       { return nil, nil }

type fakeBookings struct{ store *fakeStore }

func (r *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookings) Update(_ context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.bookings[booking.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	stored.ReasonForVisit = booking.ReasonForVisit
	stored.ContactNumber = booking.ContactNumber
	stored.AdditionalNotes = booking.AdditionalNotes
	stored.UpdatedAt = booking.UpdatedAt
	return nil
}

func (r *fakeBookings) FindAll(_ context.Context) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Booking, 0, len(r.store.bookings))
	for _, b := range r.store.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookings) FindByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookings) FindBySlot(_ context.Context, slotID string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.SlotID == slotID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookings) FindByStatus(_ context.Context, status string) ([]models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Booking
	for _, b := range r.store.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookings) FindConfirmed(ctx context.Context) ([]models.Booking, error) {
	return r.FindByStatus(ctx, models.BookingStatusConfirmed)
}

func (r *fakeBookings) ExistsConfirmed(_ context.Context, slotID, userID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.SlotID == slotID && b.UserID == userID && b.Status == models.BookingStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookings) CountBySlot(_ context.Context, slotID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, b := range r.store.bookings {
		if b.SlotID == slotID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookings) CountConfirmedBySlot(_ context.Context, slotID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, b := range r.store.bookings {
		if b.SlotID == slotID && b.Status == models.BookingStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookings) Stats(_ context.Context, now time.Time) (*models.BookingStats, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stats := &models.BookingStats{}
	dayStart := models.DayOnly(now)
	for _, b := range r.store.bookings {
		stats.TotalBookings++
		switch b.Status {
		case models.BookingStatusConfirmed:
			stats.ConfirmedBookings++
		case models.BookingStatusCancelled:
			stats.CancelledBookings++
		case models.BookingStatusCompleted:
			stats.CompletedBookings++
		}
		if !b.CreatedAt.Before(dayStart) && b.CreatedAt.Before(dayStart.AddDate(0, 0, 1)) {
			stats.TodayBookings++
		}
	}
	return stats, nil
}

func (r *fakeBookings) CreateWithSlotClaim(_ context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[booking.SlotID]
	if !ok || !slot.IsActive || slot.CurrentBookings >= slot.MaxBookings {
		return bookingRepo.ErrSlotUnavailable
	}
	slot.CurrentBookings++
	cp := *booking
	r.store.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookings) CancelWithSlotRelease(_ context.Context, bookingID, cancelledBy string, now time.Time) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return nil, bookingRepo.ErrNotConfirmed
	}
	slot := r.store.slots[b.SlotID]
	if slot == nil || slot.CurrentBookings <= 0 {
		return nil, bookingRepo.ErrNoBookingsToDecrement
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = cancelledBy
	b.UpdatedAt = now
	slot.CurrentBookings--
	cp := *b
	return &cp, nil
}

func (r *fakeBookings) Complete(_ context.Context, bookingID string, now time.Time) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return nil, bookingRepo.ErrNotConfirmed
	}
	b.Status = models.BookingStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	cp := *b
	return &cp, nil
}

func (r *fakeBookings) DeleteWithSlotRelease(_ context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.bookings[booking.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if stored.Status != models.BookingStatusCancelled {
		if slot := r.store.slots[stored.SlotID]; slot != nil && slot.CurrentBookings > 0 {
			slot.CurrentBookings--
		}
	}
	delete(r.store.bookings, booking.ID)
	return nil
}

var _ bookingRepo.BookingRepository = (*fakeBookings)(nil)
var _ slotRepo.SlotRepository = (*fakeSlots)(nil)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

type fixture struct {
	store *fakeStore
	svc   *DefaultBookingService
	clock *utils.MockClock
	slot  *models.Slot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	clock := utils.NewMockClock(testNow)
	svc := &DefaultBookingService{
		Repo:     &fakeBookings{store: store},
		SlotRepo: &fakeSlots{store: store},
		Clock:    clock,
	}
	slot := &models.Slot{
		ID:          uuid.New().String(),
		Date:        models.DayOnly(testNow),
		StartTime:   "10:00",
		EndTime:     "10:30",
		MaxBookings: 1,
		IsActive:    true,
	}
	require.NoError(t, (&fakeSlots{store: store}).Create(context.Background(), slot))
	return &fixture{store: store, svc: svc, clock: clock, slot: slot}
}

func validInput(slotID string) CreateBookingInput {
	return CreateBookingInput{
		SlotID:         slotID,
		ReasonForVisit: "Routine consultation",
		ContactNumber:  "+254712345678",
	}
}

func TestCreateBookingClaimsSlot(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "+254712345678", b.ContactNumber)
	assert.Equal(t, 1, f.store.slots[f.slot.ID].CurrentBookings)

	// A second user finds the slot full.
	_, err = f.svc.CreateBooking(context.Background(), "user-2", validInput(f.slot.ID))
	assert.True(t, utils.IsConflict(err))
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	in := validInput(f.slot.ID)
	in.ReasonForVisit = "   "
	_, err := f.svc.CreateBooking(context.Background(), "user-1", in)
	assert.True(t, utils.IsValidation(err))

	in = validInput(f.slot.ID)
	in.ContactNumber = "not-a-phone"
	_, err = f.svc.CreateBooking(context.Background(), "user-1", in)
	assert.True(t, utils.IsValidation(err))

	_, err = f.svc.CreateBooking(context.Background(), "user-1", validInput("missing"))
	assert.True(t, utils.IsNotFound(err))
}

func TestCreateBookingRejectsDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	assert.True(t, utils.IsConflict(err))
}

func TestCreateBookingRespectsBuffer(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(time.Date(2026, time.March, 10, 9, 45, 0, 0, time.Local))

	_, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	assert.True(t, utils.IsConflict(err))
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(context.Background(), b.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, "user-1", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 0, f.store.slots[f.slot.ID].CurrentBookings)

	// The slot is bookable again, by another user.
	_, err = f.svc.CreateBooking(context.Background(), "user-2", validInput(f.slot.ID))
	assert.NoError(t, err)
}

func TestStatusTransitionsAreMonotonic(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(context.Background(), b.ID, "user-1")
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(context.Background(), b.ID, "user-1")
	assert.True(t, utils.IsInvalidState(err))
	_, err = f.svc.CompleteBooking(context.Background(), b.ID)
	assert.True(t, utils.IsInvalidState(err))
}

func TestCompleteBookingKeepsSlotClaimed(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)

	completed, err := f.svc.CompleteBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Completion never frees the slot.
	assert.Equal(t, 1, f.store.slots[f.slot.ID].CurrentBookings)
	_, err = f.svc.CancelBooking(context.Background(), b.ID, "admin-1")
	assert.True(t, utils.IsInvalidState(err))
}

func TestDeleteBookingReleasesUnlessCancelled(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteBooking(context.Background(), b.ID))
	assert.Equal(t, 0, f.store.slots[f.slot.ID].CurrentBookings)

	// A cancelled booking already gave its unit back; deleting it must
	// not decrement again.
	b2, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(context.Background(), b2.ID, "user-1")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteBooking(context.Background(), b2.ID))
	assert.Equal(t, 0, f.store.slots[f.slot.ID].CurrentBookings)
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	f := newFixture(t)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput(f.slot.ID)
			_, errs[i] = f.svc.CreateBooking(context.Background(), uuid.New().String(), in)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case utils.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
	assert.Equal(t, 1, f.store.slots[f.slot.ID].CurrentBookings)
}

func TestUpcomingAndPastPartitioning(t *testing.T) {
	f := newFixture(t)

	later := &models.Slot{
		ID:          uuid.New().String(),
		Date:        models.DayOnly(testNow).AddDate(0, 0, 1),
		StartTime:   "14:00",
		EndTime:     "14:30",
		MaxBookings: 1,
		IsActive:    true,
	}
	require.NoError(t, (&fakeSlots{store: f.store}).Create(context.Background(), later))

	b1, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(context.Background(), "user-1", validInput(later.ID))
	require.NoError(t, err)

	upcoming, err := f.svc.GetUpcomingBookingsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	// Soonest first.
	assert.Equal(t, b1.ID, upcoming[0].ID)

	// Time passes beyond the first slot's start.
	f.clock.Set(time.Date(2026, time.March, 10, 11, 0, 0, 0, time.Local))
	upcoming, err = f.svc.GetUpcomingBookingsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	past, err := f.svc.GetPastBookingsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, b1.ID, past[0].ID)
}

func TestCanUserBookSlotReasons(t *testing.T) {
	f := newFixture(t)

	check, err := f.svc.CanUserBookSlot(context.Background(), "user-1", f.slot.ID)
	require.NoError(t, err)
	assert.True(t, check.CanBook)

	_, err = f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)

	check, err = f.svc.CanUserBookSlot(context.Background(), "user-1", f.slot.ID)
	require.NoError(t, err)
	assert.False(t, check.CanBook)
	assert.NotEmpty(t, check.Reason)

	_, err = f.svc.CanUserBookSlot(context.Background(), "user-1", "missing")
	assert.True(t, utils.IsNotFound(err))
}

func TestBookingStats(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), "user-1", validInput(f.slot.ID))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(context.Background(), b.ID, "user-1")
	require.NoError(t, err)

	stats, err := f.svc.GetBookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.CancelledBookings)
	assert.Equal(t, int64(0), stats.ConfirmedBookings)
	assert.Equal(t, int64(1), stats.TodayBookings)
}
