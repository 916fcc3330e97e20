package buissines

import (
	"context"
	"testing"

	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/dto"
	"github.com/deanogram/ALT-Controller-bot/internal/domain/channel/entities"
	channelerrors "github.com/deanogram/ALT-Controller-bot/internal/domain/channel/errors"
	"github.com/deanogram/ALT-Controller-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelKey struct {
	userID    int64
	channelID uint
}

type fakeChannelRepo struct {
	channels      map[int64]*entities.Channel // keyed by tg chat id
	roles         map[channelKey]string
	nextID        uint
	failUpserts   int // Upsert fails with ErrChannelExists this many times
	linkCalls     int
	channelsOrder []entities.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{
		channels: make(map[int64]*entities.Channel),
		roles:    make(map[channelKey]string),
	}
}

func (f *fakeChannelRepo) GetUserChannels(ctx context.Context, userID int64) ([]entities.Channel, error) {
	return f.channelsOrder, nil
}

func (f *fakeChannelRepo) GetByTgChatID(ctx context.Context, tgChatID int64) (*entities.Channel, error) {
	ch, ok := f.channels[tgChatID]
	if !ok {
		return nil, channelerrors.ChannelNotFound(tgChatID)
	}
	return ch, nil
}

func (f *fakeChannelRepo) Upsert(ctx context.Context, tgChatID int64, title string, username *string, settingsPatch map[string]any) (*entities.Channel, bool, error) {
	if f.failUpserts > 0 {
		f.failUpserts--
		return nil, false, channelerrors.ErrChannelExists
	}

	if ch, ok := f.channels[tgChatID]; ok {
		ch.Title = title
		ch.Username = username
		if err := ch.MergeSettings(settingsPatch); err != nil {
			return nil, false, err
		}
		return ch, false, nil
	}

	f.nextID++
	ch := &entities.Channel{ID: f.nextID, TgChatID: tgChatID, Title: title, Username: username}
	if err := ch.MergeSettings(settingsPatch); err != nil {
		return nil, false, err
	}
	f.channels[tgChatID] = ch
	return ch, true, nil
}

func (f *fakeChannelRepo) LinkUser(ctx context.Context, userID int64, channelID uint, role string) (*entities.UserChannelLink, error) {
	f.linkCalls++
	f.roles[channelKey{userID, channelID}] = role
	return &entities.UserChannelLink{UserID: userID, ChannelID: channelID, Role: role}, nil
}

func (f *fakeChannelRepo) GetMemberRole(ctx context.Context, userID int64, channelID uint) (string, error) {
	role, ok := f.roles[channelKey{userID, channelID}]
	if !ok {
		return "", channelerrors.MembershipNotFound(userID)
	}
	return role, nil
}

type fakeAuditRepo struct {
	entries []*auditentities.AuditEntry
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *auditentities.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(repo *fakeChannelRepo, audit *fakeAuditRepo) *UseCase {
	return NewUseCase(repo, audit, fakeTx{}, nil, metrics.GetDefaultMetrics(), zerolog.Nop())
}

func TestRegisterChannel_New(t *testing.T) {
	repo := newFakeChannelRepo()
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	username := "mychannel"
	channel, err := uc.RegisterChannel(context.Background(), &dto.RegisterChannelRequest{
		ActorUserID: 1,
		TgChatID:    -100500,
		Title:       "My Channel",
		Username:    &username,
		Settings:    map[string]any{"tz": "UTC"},
	})
	require.NoError(t, err)
	assert.Equal(t, "My Channel", channel.Title)

	// the creator becomes the channel owner
	role, err := repo.GetMemberRole(context.Background(), 1, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", role)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "channel_registered", audit.entries[0].Action)
}

func TestRegisterChannel_ExistingMergesSettings(t *testing.T) {
	repo := newFakeChannelRepo()
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	_, err := uc.RegisterChannel(context.Background(), &dto.RegisterChannelRequest{
		ActorUserID: 1,
		TgChatID:    -100500,
		Title:       "Old Title",
		Settings:    map[string]any{"tz": "UTC", "footer": "hello"},
	})
	require.NoError(t, err)
	linkCallsAfterCreate := repo.linkCalls

	channel, err := uc.RegisterChannel(context.Background(), &dto.RegisterChannelRequest{
		ActorUserID: 2,
		TgChatID:    -100500,
		Title:       "New Title",
		Settings:    map[string]any{"footer": "bye"},
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", channel.Title)
	settings, err := channel.Settings()
	require.NoError(t, err)
	assert.Equal(t, "UTC", settings["tz"], "untouched settings keys survive re-registration")
	assert.Equal(t, "bye", settings["footer"], "patched keys overwrite")

	assert.Equal(t, linkCallsAfterCreate, repo.linkCalls, "re-registration must not relink ownership")
	require.Len(t, audit.entries, 2)
	assert.Equal(t, "channel_updated", audit.entries[1].Action)
}

func TestRegisterChannel_RetriesOnceOnCreationRace(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.failUpserts = 1
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	channel, err := uc.RegisterChannel(context.Background(), &dto.RegisterChannelRequest{
		ActorUserID: 1,
		TgChatID:    -42,
		Title:       "Raced",
	})
	require.NoError(t, err)
	assert.NotZero(t, channel.ID)
}

func TestRegisterChannel_SecondRaceLossSurfacesConflict(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.failUpserts = 2
	uc := newTestUseCase(repo, &fakeAuditRepo{})

	_, err := uc.RegisterChannel(context.Background(), &dto.RegisterChannelRequest{
		ActorUserID: 1,
		TgChatID:    -42,
		Title:       "Raced",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflictError(err))
}

func TestSetMemberRole_ByAdmin(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.roles[channelKey{1, 10}] = "admin"
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	link, err := uc.SetMemberRole(context.Background(), &dto.SetMemberRoleRequest{
		ActorUserID:  1,
		TargetUserID: 2,
		ChannelID:    10,
		Role:         "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", link.Role)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "role_assigned", audit.entries[0].Action)
}

func TestSetMemberRole_LastCallWins(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.roles[channelKey{1, 10}] = "owner"
	uc := newTestUseCase(repo, &fakeAuditRepo{})

	for _, role := range []string{"editor", "analyst"} {
		_, err := uc.SetMemberRole(context.Background(), &dto.SetMemberRoleRequest{
			ActorUserID:  1,
			TargetUserID: 2,
			ChannelID:    10,
			Role:         role,
		})
		require.NoError(t, err)
	}

	role, err := repo.GetMemberRole(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "analyst", role)
}

func TestSetMemberRole_EditorDenied(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.roles[channelKey{1, 10}] = "editor"
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	_, err := uc.SetMemberRole(context.Background(), &dto.SetMemberRoleRequest{
		ActorUserID:  1,
		TargetUserID: 2,
		ChannelID:    10,
		Role:         "analyst",
	})
	require.Error(t, err)

	var permErr *pkgerrors.PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, "editor", permErr.ActingRole)
	assert.Equal(t, "admin", permErr.RequiredRole)

	// no mutation and no audit entry on a denied action
	_, roleErr := repo.GetMemberRole(context.Background(), 2, 10)
	assert.Error(t, roleErr)
	assert.Empty(t, audit.entries)
}

func TestSetMemberRole_NonMemberDenied(t *testing.T) {
	repo := newFakeChannelRepo()
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(repo, audit)

	_, err := uc.SetMemberRole(context.Background(), &dto.SetMemberRoleRequest{
		ActorUserID:  99,
		TargetUserID: 2,
		ChannelID:    10,
		Role:         "editor",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsPermissionError(err))
	assert.Empty(t, audit.entries)
}

func TestSetMemberRole_UnknownRoleRejected(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.roles[channelKey{1, 10}] = "owner"
	uc := newTestUseCase(repo, &fakeAuditRepo{})

	_, err := uc.SetMemberRole(context.Background(), &dto.SetMemberRoleRequest{
		ActorUserID:  1,
		TargetUserID: 2,
		ChannelID:    10,
		Role:         "superuser",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestListChannelOptions(t *testing.T) {
	repo := newFakeChannelRepo()
	repo.channelsOrder = []entities.Channel{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta"},
	}
	uc := newTestUseCase(repo, &fakeAuditRepo{})

	options, err := uc.ListChannelOptions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []dto.ChannelOption{{ID: 1, Title: "Alpha"}, {ID: 2, Title: "Beta"}}, options)
}
