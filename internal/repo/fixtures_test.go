package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/repo"
	"github.com/Nikolas7zip/shareit/testutil"
)

// testRepos bundles all repos over one database transaction so fixtures
// created through one repo are visible to the others. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
type testRepos struct {
	users    repo.UserRepo
	items    repo.ItemRepo
	bookings repo.BookingRepo
	comments repo.CommentRepo
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		users:    repo.NewUserRepo(tx),
		items:    repo.NewItemRepo(tx),
		bookings: repo.NewBookingRepo(tx),
		comments: repo.NewCommentRepo(tx),
	}
}

var emailSeq int

// createUser inserts a user with a unique email and returns it.
func createUser(t *testing.T, r testRepos, name string) domain.User {
	t.Helper()
	emailSeq++
	user, err := r.users.Create(context.Background(), domain.User{
		Name:  name,
		Email: fmt.Sprintf("%s-%d@example.com", name, emailSeq),
	})
	require.NoError(t, err)
	return user
}

// createItem inserts an available item owned by the given user.
func createItem(t *testing.T, r testRepos, ownerID uuid.UUID) domain.Item {
	t.Helper()
	item, err := r.items.Create(context.Background(), domain.Item{
		OwnerID:     ownerID,
		Name:        "cordless drill",
		Description: "18V, two batteries",
		Available:   true,
	})
	require.NoError(t, err)
	return item
}

// createBooking inserts a booking in the given status.
func createBooking(t *testing.T, r testRepos, itemID, bookerID uuid.UUID, start, end time.Time, status domain.Status) domain.Booking {
	t.Helper()
	booking, err := r.bookings.Create(context.Background(), domain.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   domain.StatusPending,
	})
	require.NoError(t, err)

	if status != domain.StatusPending {
		booking, err = r.bookings.UpdateStatus(context.Background(), booking.ID, domain.StatusPending, status)
		require.NoError(t, err)
	}
	return booking
}

// bookingBase is the reference instant for interval fixtures; far enough in
// the future that fixtures never collide with wall-clock "now" semantics.
var bookingBase = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func interval(startHours, endHours int) (time.Time, time.Time) {
	return bookingBase.Add(time.Duration(startHours) * time.Hour),
		bookingBase.Add(time.Duration(endHours) * time.Hour)
}
