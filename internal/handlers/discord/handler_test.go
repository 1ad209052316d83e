package discord_test

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/discord"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
	mockmatch "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match/mock"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/testutils"
)

const channelID = "chan-1"

type sentMessage struct {
	channelID string
	msg       *discordgo.MessageSend
}

// fakeMessenger records everything the handler says
type fakeMessenger struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []string
	sent      []sentMessage
}

func (f *fakeMessenger) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeMessenger) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, *edit.Content)
	return &discordgo.Message{}, nil
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{channelID: channelID, msg: data})
	return &discordgo.Message{}, nil
}

func command(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "interaction-1",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: channelID,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "arena",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
		},
	}}
}

func intOption(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

func stringOption(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: v,
	}
}

func button(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "interaction-2",
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: channelID,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.ButtonComponent,
		},
	}}
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	svc       *mockmatch.MockService
	messenger *fakeMessenger
	bus       *events.Bus
	handler   *discord.Handler
	ctx       context.Context
	active    *matches.Match
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = mockmatch.NewMockService(s.ctrl)
	s.messenger = &fakeMessenger{}
	s.bus = events.NewBus()
	s.ctx = context.Background()
	s.active = &matches.Match{ID: "match-1", ChannelID: channelID, Status: matches.StatusActive}

	s.handler = discord.NewHandler(&discord.HandlerConfig{
		Messenger:    s.messenger,
		MatchService: s.svc,
		Bus:          s.bus,
		Arena: config.ArenaConfig{
			Monsters: 4,
			Players: []config.PlayerConfig{
				{Name: "Conan", Class: "barbarian"},
				{Name: "Xena", Class: "fighter"},
				{Name: "Arthur", Class: "paladin"},
				{Name: "Merlin", Class: "sorcerer"},
			},
		},
		Logger: zap.NewNop(),
	})
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// startMatch runs /arena start and hands the sink to fill
func (s *HandlerTestSuite) startMatch(fill func(presentation.Sink)) {
	s.svc.EXPECT().
		CreateMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *match.CreateMatchInput) (*matches.Match, error) {
			if fill != nil {
				fill(input.Sink)
			}
			return s.active, nil
		})

	s.handler.Handle(s.ctx, command("start"))
}

func (s *HandlerTestSuite) TestStart() {
	var got *match.CreateMatchInput
	s.svc.EXPECT().
		CreateMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *match.CreateMatchInput) (*matches.Match, error) {
			got = input
			return s.active, nil
		})

	s.handler.Handle(s.ctx, command("start", intOption("monsters", 3)))

	s.Require().NotNil(got)
	s.Equal(channelID, got.ChannelID)
	s.Equal(3, got.Monsters)
	s.Require().Len(got.Players, 4)
	s.Equal(match.PlayerInput{Name: "Merlin", Class: "sorcerer"}, got.Players[3])
	s.NotNil(got.Sink)
	s.NotNil(got.OnFatal)

	s.Require().Len(s.messenger.responses, 1)
	s.Equal(discordgo.InteractionResponseDeferredChannelMessageWithSource, s.messenger.responses[0].Type)
	s.Require().Len(s.messenger.edits, 1)
	s.Contains(s.messenger.edits[0], "match-1")
}

func (s *HandlerTestSuite) TestStart_PlayersOption() {
	var got *match.CreateMatchInput
	s.svc.EXPECT().
		CreateMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *match.CreateMatchInput) (*matches.Match, error) {
			got = input
			return s.active, nil
		})

	s.handler.Handle(s.ctx, command("start", stringOption("players", "A:1, B:2, C:3, D:4")))

	s.Require().NotNil(got)
	s.Equal([]match.PlayerInput{
		{Name: "A", Class: "1"},
		{Name: "B", Class: "2"},
		{Name: "C", Class: "3"},
		{Name: "D", Class: "4"},
	}, got.Players)
	s.Equal(4, got.Monsters)
}

func (s *HandlerTestSuite) TestStart_BadPlayers() {
	s.handler.Handle(s.ctx, command("start", stringOption("players", "Conan:barbarian")))

	s.Require().Len(s.messenger.edits, 1)
	s.Contains(s.messenger.edits[0], "exactly 4 players")
}

func (s *HandlerTestSuite) TestStart_ChannelBusy() {
	s.startMatch(nil)
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)

	s.handler.Handle(s.ctx, command("start"))

	s.Require().Len(s.messenger.edits, 2)
	s.Contains(s.messenger.edits[1], "already running")
}

func (s *HandlerTestSuite) TestStart_ServiceErrorFreesChannel() {
	s.svc.EXPECT().
		CreateMatch(gomock.Any(), gomock.Any()).
		Return(nil, errors.Validationf("monster count must be between 0 and 87, got 99"))

	s.handler.Handle(s.ctx, command("start"))
	s.Require().Len(s.messenger.edits, 1)
	s.Contains(s.messenger.edits[0], "monster count")

	// No sink is left behind, so the next start does not check the channel
	s.startMatch(nil)
	s.Len(s.messenger.edits, 2)
}

func (s *HandlerTestSuite) TestMoveCommand() {
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().Click(gomock.Any(), "match-1", shared.Pt(2, 1)).Return(arena.OutcomeMoved, nil)

	s.handler.Handle(s.ctx, command("move", intOption("x", 2), intOption("y", 1)))

	s.Require().Len(s.messenger.responses, 1)
	resp := s.messenger.responses[0]
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	s.Contains(resp.Data.Content, "Moved")
}

func (s *HandlerTestSuite) TestRestCommand_NoMatch() {
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).
		Return(nil, errors.NotFoundf("no match is running in this channel"))

	s.handler.Handle(s.ctx, command("rest"))

	s.Require().Len(s.messenger.responses, 1)
	s.Contains(s.messenger.responses[0].Data.Content, "/arena start")
}

func (s *HandlerTestSuite) TestBoardCommand() {
	board := testutils.CreateTestBoard()
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().Board(gomock.Any(), "match-1").Return(board, nil)

	s.handler.Handle(s.ctx, command("board"))

	s.Require().Len(s.messenger.responses, 1)
	data := s.messenger.responses[0].Data
	s.Require().Len(data.Files, 1)
	s.Equal("board.png", data.Files[0].Name)
	s.Require().Len(data.Embeds, 1)
	s.NotEmpty(data.Components)
}

func (s *HandlerTestSuite) TestEndCommand() {
	s.startMatch(nil)
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().EndMatch(gomock.Any(), "match-1").Return(nil)

	s.handler.Handle(s.ctx, command("end"))

	last := s.messenger.responses[len(s.messenger.responses)-1]
	s.Contains(last.Data.Content, "ended")

	// The channel is free again
	s.startMatch(nil)
}

func (s *HandlerTestSuite) TestCellButton() {
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().Click(gomock.Any(), "match-1", shared.Pt(2, 1)).Return(arena.OutcomeMoved, nil)

	s.handler.Handle(s.ctx, button(discord.CellCustomID(shared.Pt(2, 1))))

	s.Require().Len(s.messenger.responses, 1)
	s.Equal(discordgo.InteractionResponseDeferredMessageUpdate, s.messenger.responses[0].Type)
}

func (s *HandlerTestSuite) TestCellButton_Ignored() {
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().Click(gomock.Any(), "match-1", shared.Pt(9, 9)).Return(arena.OutcomeIgnored, nil)

	s.handler.Handle(s.ctx, button("arena:cell:9:9"))

	s.Require().Len(s.messenger.responses, 1)
	resp := s.messenger.responses[0]
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	s.Contains(resp.Data.Content, "can't be used")
}

func (s *HandlerTestSuite) TestRestButton_Rejected() {
	s.svc.EXPECT().GetActiveMatch(gomock.Any(), channelID).Return(s.active, nil)
	s.svc.EXPECT().Rest(gomock.Any(), "match-1").Return(arena.OutcomeRestRejected, nil)

	s.handler.Handle(s.ctx, button(discord.RestCustomID()))

	s.Require().Len(s.messenger.responses, 1)
	s.Contains(s.messenger.responses[0].Data.Content, arena.RestRejected)
}

func (s *HandlerTestSuite) TestForeignButtonsIgnored() {
	for _, id := range []string{"character:quickshow:char_1", "arena", "arena:cell:1", "arena:cell:x:y", "arena:jump"} {
		s.handler.Handle(s.ctx, button(id))
	}
	s.Empty(s.messenger.responses)
}

func (s *HandlerTestSuite) TestBoardPostedOnTurnStart() {
	s.startMatch(func(sink presentation.Sink) {
		sink.AppendLog(arena.EnteredMessage)
		sink.SetStat(presentation.StatName, "Conan")
		sink.SetStat(presentation.StatHP, "300")
		s.Require().NoError(sink.PlayMusic(presentation.Cue{Kind: presentation.CueAmbient, Track: "charwood"}))
	})
	s.svc.EXPECT().GetMatch(gomock.Any(), "match-1").Return(s.active, nil)

	board := testutils.CreateTestBoard()
	s.Require().NoError(s.bus.Emit(&events.Event{
		Type:    events.EventTypeTurnStarted,
		MatchID: "match-1",
		Board:   &board,
	}))

	s.Require().Len(s.messenger.sent, 1)
	sent := s.messenger.sent[0]
	s.Equal(channelID, sent.channelID)

	s.Require().Len(sent.msg.Embeds, 1)
	embed := sent.msg.Embeds[0]
	s.Contains(embed.Description, arena.EnteredMessage)
	s.Equal("attachment://board.png", embed.Image.URL)
	s.Equal("♪ charwood", embed.Footer.Text)
	s.Require().Len(embed.Fields, 2)
	s.Equal("Name", embed.Fields[0].Name)
	s.Equal("Conan", embed.Fields[0].Value)

	s.Require().Len(sent.msg.Files, 1)
	s.Equal("board.png", sent.msg.Files[0].Name)

	s.Require().Len(sent.msg.Components, 1)
	row, ok := sent.msg.Components[0].(discordgo.ActionsRow)
	s.Require().True(ok)
	var ids []string
	for _, c := range row.Components {
		b, ok := c.(discordgo.Button)
		s.Require().True(ok)
		ids = append(ids, b.CustomID)
	}
	s.Equal([]string{"arena:cell:1:2", "arena:cell:2:1", "arena:cell:2:2", "arena:rest"}, ids)
}

func (s *HandlerTestSuite) TestMatchOverReleasesChannel() {
	s.startMatch(nil)
	s.svc.EXPECT().GetMatch(gomock.Any(), "match-1").Return(s.active, nil)

	board := testutils.CreateTestBoard()
	board.Winner = "Merlin"
	board.State = arena.StateGameOver.String()
	s.Require().NoError(s.bus.Emit(&events.Event{
		Type:    events.EventTypeMatchOver,
		MatchID: "match-1",
		Winner:  "Merlin",
		Board:   &board,
	}))

	s.Require().Len(s.messenger.sent, 1)
	msg := s.messenger.sent[0].msg
	s.Empty(msg.Components)
	s.Require().Len(msg.Embeds[0].Fields, 1)
	s.Equal("Merlin", msg.Embeds[0].Fields[0].Value)

	s.startMatch(nil)
}

func (s *HandlerTestSuite) TestMatchAbortedPostsReason() {
	s.startMatch(func(sink presentation.Sink) {
		sink.ShowMessage("Exchange interrupted", "context canceled")
	})
	s.svc.EXPECT().GetMatch(gomock.Any(), "match-1").Return(s.active, nil)

	s.Require().NoError(s.bus.Emit(&events.Event{
		Type:    events.EventTypeMatchAborted,
		MatchID: "match-1",
		Reason:  "exchange failed: interrupted",
	}))

	s.Require().Len(s.messenger.sent, 1)
	embed := s.messenger.sent[0].msg.Embeds[0]
	s.Contains(embed.Description, "Exchange interrupted")
	s.Equal("exchange failed: interrupted", embed.Fields[0].Value)
}

func (s *HandlerTestSuite) TestUnknownMatchEventIsSkipped() {
	s.svc.EXPECT().GetMatch(gomock.Any(), "ghost").Return(nil, errors.NotFoundf("match ghost not found"))

	board := testutils.CreateTestBoard()
	s.NoError(s.bus.Emit(&events.Event{Type: events.EventTypeTurnStarted, MatchID: "ghost", Board: &board}))
	s.Empty(s.messenger.sent)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestCommands(t *testing.T) {
	cmds := discord.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "arena", cmds[0].Name)

	var subs []string
	for _, opt := range cmds[0].Options {
		subs = append(subs, opt.Name)
	}
	assert.Equal(t, []string{"start", "move", "rest", "board", "end"}, subs)
}

func TestChannelSink_Flush(t *testing.T) {
	sink := discord.NewChannelSink()
	for i := 0; i < 25; i++ {
		sink.AppendLog(string(rune('a' + i)))
	}
	sink.SetStat(presentation.StatName, "Xena")
	sink.ShowMessage("title", "text")

	post := sink.Flush()
	assert.Len(t, post.Lines, 20)
	assert.Equal(t, "f", post.Lines[0])
	assert.Equal(t, "Xena", post.Stats[presentation.StatName])
	assert.Len(t, post.Messages, 1)

	post = sink.Flush()
	assert.Empty(t, post.Lines)
	assert.Empty(t, post.Messages)
	assert.Equal(t, "Xena", post.Stats[presentation.StatName])
}
