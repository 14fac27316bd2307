package cards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	printed  []PrintRequest
	accepted []AcceptedIDCard
	history  []AcceptanceHistory
	admins   map[string]struct{}
	ops      []string

	listErr   error
	insertErr error
	deleteErr error
	existsErr error
	adminErr  error
}

func (f *fakeStore) ListPrintRequests(ctx context.Context) ([]PrintRequest, error) {
	f.ops = append(f.ops, "listPrinted")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]PrintRequest, 0, len(f.printed))
	return append(out, f.printed...), nil
}

func (f *fakeStore) ListAccepted(ctx context.Context) ([]AcceptedIDCard, error) {
	f.ops = append(f.ops, "listAccepted")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]AcceptedIDCard, 0, len(f.accepted))
	return append(out, f.accepted...), nil
}

func (f *fakeStore) ListHistory(ctx context.Context) ([]AcceptanceHistory, error) {
	f.ops = append(f.ops, "listHistory")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]AcceptanceHistory, 0, len(f.history))
	return append(out, f.history...), nil
}

func (f *fakeStore) InsertAccepted(ctx context.Context, card AcceptedIDCard) (AcceptedIDCard, error) {
	f.ops = append(f.ops, "insertAccepted")
	if f.insertErr != nil {
		return AcceptedIDCard{}, f.insertErr
	}
	card.ID = primitive.NewObjectID()
	f.accepted = append(f.accepted, card)
	return card, nil
}

func (f *fakeStore) DeletePrintRequests(ctx context.Context, registerNumber string) (int64, error) {
	f.ops = append(f.ops, "deletePrinted")
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []PrintRequest
	var removed int64
	for _, doc := range f.printed {
		if doc.RegisterNumber == registerNumber {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	f.printed = kept
	return removed, nil
}

func (f *fakeStore) AcceptedExists(ctx context.Context, registerNumber string) (bool, error) {
	f.ops = append(f.ops, "acceptedExists")
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, doc := range f.accepted {
		if doc.RegisterNumber == registerNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AdminExists(ctx context.Context, adminID string) (bool, error) {
	f.ops = append(f.ops, "adminExists")
	if f.adminErr != nil {
		return false, f.adminErr
	}
	_, ok := f.admins[adminID]
	return ok, nil
}

func TestAcceptDefaultsStatusAndTime(t *testing.T) {
	fs := &fakeStore{printed: []PrintRequest{{RegisterNumber: "R100", Name: "A"}}}
	svc := NewService(fs)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	saved, err := svc.Accept(context.Background(), AcceptedIDCard{RegisterNumber: "R100", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, saved.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), saved.AcceptedAt)
	assert.False(t, saved.ID.IsZero())
}

func TestAcceptKeepsSuppliedStatusAndTime(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs)

	supplied := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	saved, err := svc.Accept(context.Background(), AcceptedIDCard{
		RegisterNumber: "R1",
		Status:         "reissued",
		AcceptedAt:     supplied,
	})
	require.NoError(t, err)
	assert.Equal(t, "reissued", saved.Status)
	assert.Equal(t, supplied, saved.AcceptedAt)
}

func TestAcceptInsertsBeforeDeleting(t *testing.T) {
	fs := &fakeStore{printed: []PrintRequest{{RegisterNumber: "R100"}}}
	svc := NewService(fs)

	_, err := svc.Accept(context.Background(), AcceptedIDCard{RegisterNumber: "R100"})
	require.NoError(t, err)
	assert.Equal(t, []string{"acceptedExists", "insertAccepted", "deletePrinted"}, fs.ops)
	assert.Empty(t, fs.printed)
	assert.Len(t, fs.accepted, 1)
}

func TestAcceptRequiresRegisterNumber(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs)

	_, err := svc.Accept(context.Background(), AcceptedIDCard{Name: "no register number"})
	assert.ErrorIs(t, err, ErrRegisterNumberRequired)
	assert.Empty(t, fs.ops)
}

func TestAcceptRejectsSecondAccept(t *testing.T) {
	fs := &fakeStore{accepted: []AcceptedIDCard{{RegisterNumber: "R100", Status: StatusAccepted}}}
	svc := NewService(fs)

	_, err := svc.Accept(context.Background(), AcceptedIDCard{RegisterNumber: "R100"})
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	assert.NotContains(t, fs.ops, "insertAccepted")
	assert.Len(t, fs.accepted, 1)
}

func TestAcceptKeepsInsertWhenDeleteFails(t *testing.T) {
	fs := &fakeStore{
		printed:   []PrintRequest{{RegisterNumber: "R100"}},
		deleteErr: errors.New("delete blew up"),
	}
	svc := NewService(fs)

	_, err := svc.Accept(context.Background(), AcceptedIDCard{RegisterNumber: "R100"})
	assert.EqualError(t, err, "delete blew up")
	// Favoring "may duplicate" over "may lose the record": the accepted copy
	// stays durable even though the pending copy was not removed.
	assert.Len(t, fs.accepted, 1)
	assert.Len(t, fs.printed, 1)
}

func TestAcceptZeroPendingMatchesIsFine(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs)

	saved, err := svc.Accept(context.Background(), AcceptedIDCard{RegisterNumber: "R404"})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, saved.Status)
}

func TestLoginExactMatch(t *testing.T) {
	fs := &fakeStore{admins: map[string]struct{}{"ADMIN01": {}}}
	svc := NewService(fs)

	ok, err := svc.Login(context.Background(), "ADMIN01")
	require.NoError(t, err)
	assert.True(t, ok)

	// Case-sensitive: the lowercase variant is a miss.
	ok, err = svc.Login(context.Background(), "admin01")
	require.NoError(t, err)
	assert.False(t, ok)
}
