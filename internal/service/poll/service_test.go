package poll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockPollRepo struct {
	CreateFunc             func(ctx context.Context, p *domain.Poll) (*domain.Poll, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	ListFunc               func(ctx context.Context) ([]domain.Poll, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	UpsertVoteFunc         func(ctx context.Context, v *domain.PollVote) (*domain.PollVote, error)
	ListVotersFunc         func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.PollVoter, error)
	CreateSlotsFunc        func(ctx context.Context, slots []domain.TimeSlot) error
	GetSlotFunc            func(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	ListSlotsFunc          func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error)
	UpsertSlotResponseFunc func(ctx context.Context, resp *domain.TimeSlotResponse) error
	ListSlotRespondersFunc func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.SlotResponder, error)
}

func (m *mockPollRepo) Create(ctx context.Context, p *domain.Poll) (*domain.Poll, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockPollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPollRepo) List(ctx context.Context) ([]domain.Poll, error) {
	return m.ListFunc(ctx)
}

func (m *mockPollRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockPollRepo) UpsertVote(ctx context.Context, v *domain.PollVote) (*domain.PollVote, error) {
	return m.UpsertVoteFunc(ctx, v)
}

func (m *mockPollRepo) ListVoters(ctx context.Context, pollIDs []uuid.UUID) ([]domain.PollVoter, error) {
	if m.ListVotersFunc != nil {
		return m.ListVotersFunc(ctx, pollIDs)
	}
	return nil, nil
}

func (m *mockPollRepo) CreateSlots(ctx context.Context, slots []domain.TimeSlot) error {
	return m.CreateSlotsFunc(ctx, slots)
}

func (m *mockPollRepo) GetSlot(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	return m.GetSlotFunc(ctx, id)
}

func (m *mockPollRepo) ListSlots(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error) {
	if m.ListSlotsFunc != nil {
		return m.ListSlotsFunc(ctx, pollIDs)
	}
	return nil, nil
}

func (m *mockPollRepo) UpsertSlotResponse(ctx context.Context, resp *domain.TimeSlotResponse) error {
	return m.UpsertSlotResponseFunc(ctx, resp)
}

func (m *mockPollRepo) ListSlotResponders(ctx context.Context, pollIDs []uuid.UUID) ([]domain.SlotResponder, error) {
	if m.ListSlotRespondersFunc != nil {
		return m.ListSlotRespondersFunc(ctx, pollIDs)
	}
	return nil, nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func admin() domain.Viewer {
	return domain.Viewer{UserID: uuid.New(), Nickname: "officer", Role: domain.UserRoleAdmin, Timezone: "UTC"}
}

func member() domain.Viewer {
	return domain.Viewer{UserID: uuid.New(), Nickname: "grunt", Role: domain.UserRoleMember, Timezone: "UTC"}
}

// ---------------------------------------------------------------------------
// CreateTime
// ---------------------------------------------------------------------------

func TestService_CreateTime_AssignsPositionsInAuthoringOrder(t *testing.T) {
	t.Parallel()

	var createdSlots []domain.TimeSlot
	repo := &mockPollRepo{
		CreateFunc: func(ctx context.Context, p *domain.Poll) (*domain.Poll, error) {
			return p, nil
		},
		CreateSlotsFunc: func(ctx context.Context, slots []domain.TimeSlot) error {
			createdSlots = slots
			return nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "Europe/London")

	input := CreateTimeInput{
		Title: "Raid times",
		Slots: []SlotInput{
			{Day: "SUNDAY", TimeOfDay: "22:00"},
			{Day: "MONDAY", TimeOfDay: "08:00"},
			{Day: "FRIDAY", TimeOfDay: "19:30"},
		},
	}

	poll, slots, err := svc.CreateTime(context.Background(), admin(), input)
	if err != nil {
		t.Fatalf("CreateTime: unexpected error: %v", err)
	}
	if poll.Type != domain.PollTypeTime {
		t.Errorf("Type mismatch: got %s", poll.Type)
	}
	if len(createdSlots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(createdSlots))
	}
	for i, slot := range createdSlots {
		if slot.Position != i {
			t.Errorf("slot[%d].Position = %d, positions must follow authoring order", i, slot.Position)
		}
		if slot.PollID != poll.ID {
			t.Errorf("slot[%d] not linked to poll", i)
		}
	}
	if slots[0].Day != domain.Sunday || slots[2].Day != domain.Friday {
		t.Error("slot order must match input order")
	}
}

func TestService_CreateTime_NoSlots(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockPollRepo{}, &mockTxManager{}, "UTC")

	_, _, err := svc.CreateTime(context.Background(), admin(), CreateTimeInput{Title: "Empty"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("time poll without slots should be a validation error, got %v", err)
	}
}

func TestService_CreateTime_MemberForbidden(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockPollRepo{}, &mockTxManager{}, "UTC")

	_, _, err := svc.CreateTime(context.Background(), member(), CreateTimeInput{
		Title: "Raid",
		Slots: []SlotInput{{Day: "MONDAY", TimeOfDay: "10:00"}},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("member create should be ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Vote
// ---------------------------------------------------------------------------

func TestService_Vote_OnRegularPoll(t *testing.T) {
	t.Parallel()

	viewer := member()
	pollID := uuid.New()
	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return &domain.Poll{ID: id, Type: domain.PollTypeRegular}, nil
		},
		UpsertVoteFunc: func(ctx context.Context, v *domain.PollVote) (*domain.PollVote, error) {
			if v.UserID != viewer.UserID || v.PollID != pollID {
				t.Errorf("vote keyed wrong: %+v", v)
			}
			return v, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	v, err := svc.Vote(context.Background(), viewer, pollID, true)
	if err != nil {
		t.Fatalf("Vote: unexpected error: %v", err)
	}
	if !v.Vote {
		t.Error("vote value should round-trip")
	}
}

func TestService_Vote_OnTimePollRejected(t *testing.T) {
	t.Parallel()

	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return &domain.Poll{ID: id, Type: domain.PollTypeTime}, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	_, err := svc.Vote(context.Background(), member(), uuid.New(), true)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("voting on a time poll should be a validation error, got %v", err)
	}
}

func TestService_Vote_UnknownPoll(t *testing.T) {
	t.Parallel()

	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	_, err := svc.Vote(context.Background(), member(), uuid.New(), true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// RespondToSlots
// ---------------------------------------------------------------------------

func TestService_RespondToSlots_BatchInOneTx(t *testing.T) {
	t.Parallel()

	viewer := member()
	pollID := uuid.New()
	slotA, slotB := uuid.New(), uuid.New()

	var txEntered bool
	var upserts []domain.TimeSlotResponse

	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return &domain.Poll{ID: id, Type: domain.PollTypeTime}, nil
		},
		ListSlotsFunc: func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error) {
			return []domain.TimeSlot{
				{ID: slotA, PollID: pollID, Position: 0},
				{ID: slotB, PollID: pollID, Position: 1},
			}, nil
		},
		UpsertSlotResponseFunc: func(ctx context.Context, resp *domain.TimeSlotResponse) error {
			if !txEntered {
				t.Error("slot upserts must run inside the transaction")
			}
			upserts = append(upserts, *resp)
			return nil
		},
	}
	tx := &mockTxManager{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			txEntered = true
			defer func() { txEntered = false }()
			return fn(ctx)
		},
	}

	svc := NewService(testLogger(), repo, tx, "UTC")

	err := svc.RespondToSlots(context.Background(), viewer, pollID, []SlotResponseInput{
		{SlotID: slotA, Available: true},
		{SlotID: slotB, Available: false},
	})
	if err != nil {
		t.Fatalf("RespondToSlots: unexpected error: %v", err)
	}

	if len(upserts) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(upserts))
	}
	if upserts[1].Available {
		t.Error("explicit false must be stored, not dropped")
	}
}

func TestService_RespondToSlots_ForeignSlotRejected(t *testing.T) {
	t.Parallel()

	pollID := uuid.New()
	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return &domain.Poll{ID: id, Type: domain.PollTypeTime}, nil
		},
		ListSlotsFunc: func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error) {
			return []domain.TimeSlot{{ID: uuid.New(), PollID: pollID}}, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	err := svc.RespondToSlots(context.Background(), member(), pollID, []SlotResponseInput{
		{SlotID: uuid.New(), Available: true},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("slot of another poll should be a validation error, got %v", err)
	}
}

func TestService_RespondToSlots_DuplicateSlot(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockPollRepo{}, &mockTxManager{}, "UTC")

	slotID := uuid.New()
	err := svc.RespondToSlots(context.Background(), member(), uuid.New(), []SlotResponseInput{
		{SlotID: slotID, Available: true},
		{SlotID: slotID, Available: false},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("duplicate slots in a batch should be a validation error, got %v", err)
	}
}

func TestService_RespondToSlots_OnRegularPollRejected(t *testing.T) {
	t.Parallel()

	repo := &mockPollRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return &domain.Poll{ID: id, Type: domain.PollTypeRegular}, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	err := svc.RespondToSlots(context.Background(), member(), uuid.New(), []SlotResponseInput{
		{SlotID: uuid.New(), Available: true},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("slot responses on a regular poll should be a validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestService_List_RegularPollTallies(t *testing.T) {
	t.Parallel()

	viewer := member()
	p := domain.Poll{ID: uuid.New(), Type: domain.PollTypeRegular, Title: "Move siege?"}
	repo := &mockPollRepo{
		ListFunc: func(ctx context.Context) ([]domain.Poll, error) {
			return []domain.Poll{p}, nil
		},
		ListVotersFunc: func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.PollVoter, error) {
			return []domain.PollVoter{
				{PollID: p.ID, UserID: uuid.New(), Nickname: "alice", Vote: true},
				{PollID: p.ID, UserID: viewer.UserID, Nickname: viewer.Nickname, Vote: false},
			}, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	views, err := svc.List(context.Background(), viewer)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	v := views[0]
	if len(v.Yes) != 1 || v.Yes[0] != "alice" {
		t.Errorf("Yes mismatch: %v", v.Yes)
	}
	if len(v.No) != 1 || v.No[0] != viewer.Nickname {
		t.Errorf("No mismatch: %v", v.No)
	}
	if v.ViewerVote == nil || *v.ViewerVote {
		t.Errorf("ViewerVote mismatch: %v", v.ViewerVote)
	}
}

func TestService_List_TimePollMatrix(t *testing.T) {
	t.Parallel()

	viewer := member()
	p := domain.Poll{ID: uuid.New(), Type: domain.PollTypeTime, Title: "Raid times"}
	slotA := domain.TimeSlot{ID: uuid.New(), PollID: p.ID, Day: domain.Sunday, TimeOfDay: "22:00", Position: 0}
	slotB := domain.TimeSlot{ID: uuid.New(), PollID: p.ID, Day: domain.Monday, TimeOfDay: "08:00", Position: 1}
	other := uuid.New()

	repo := &mockPollRepo{
		ListFunc: func(ctx context.Context) ([]domain.Poll, error) {
			return []domain.Poll{p}, nil
		},
		ListSlotsFunc: func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error) {
			return []domain.TimeSlot{slotA, slotB}, nil
		},
		ListSlotRespondersFunc: func(ctx context.Context, pollIDs []uuid.UUID) ([]domain.SlotResponder, error) {
			return []domain.SlotResponder{
				{TimeSlotID: slotA.ID, UserID: other, Nickname: "alice", Available: true},
			}, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	views, err := svc.List(context.Background(), viewer)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	v := views[0]
	if len(v.Slots) != 2 {
		t.Fatalf("expected 2 localized slots, got %d", len(v.Slots))
	}
	if v.Slots[0].Slot.ID != slotA.ID {
		t.Error("slots must keep authoring order")
	}

	// alice responded, and the viewer gets a row despite never responding.
	if len(v.Matrix.Rows) != 2 {
		t.Fatalf("expected 2 matrix rows, got %d", len(v.Matrix.Rows))
	}
	viewerRow, ok := v.Matrix.Row(viewer.UserID)
	if !ok {
		t.Fatal("viewer row must always be present")
	}
	for _, cell := range viewerRow.Available {
		if cell {
			t.Error("viewer without responses should have all-false cells")
		}
	}
	aliceRow, ok := v.Matrix.Row(other)
	if !ok || !aliceRow.Available[0] || aliceRow.Available[1] {
		t.Errorf("alice row mismatch: %+v", aliceRow)
	}
}

func TestService_List_Empty(t *testing.T) {
	t.Parallel()

	repo := &mockPollRepo{
		ListFunc: func(ctx context.Context) ([]domain.Poll, error) {
			return nil, nil
		},
	}

	svc := NewService(testLogger(), repo, &mockTxManager{}, "UTC")

	views, err := svc.List(context.Background(), member())
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected no views, got %d", len(views))
	}
}
