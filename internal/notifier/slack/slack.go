package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/metrics"
	"github.com/mauv0809/fantafav/internal/notifier"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const postTimeout = 10 * time.Second

// maxListedFavourites caps the favourites shown in one message.
const maxListedFavourites = 20

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics, options ...slack.Option) *Notifier {
	return NewNotifierWithAPI(slack.New(token, options...), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, postTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(fallbackText(message), false),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) NotifyFetchFailed(ctx context.Context, message string, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatFetchFailed(message), dryRun)
	return err
}

func (s *Notifier) NotifyFavouritesChanged(ctx context.Context, favourites []roster.Player, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatFavourites(favourites), dryRun)
	return err
}

// formatFetchFailed creates the Slack message for a failed roster load.
func (s *Notifier) formatFetchFailed(message string) slack.Message {
	header := slack.NewTextBlockObject("plain_text", "⚠️ Roster refresh failed", true, false)
	body := slack.NewTextBlockObject("plain_text", message, false, false)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(header),
		slack.NewSectionBlock(body, nil, nil),
	)
}

// formatFavourites creates the Slack message listing the current favourites.
func (s *Notifier) formatFavourites(favourites []roster.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⭐ Favourites (%d)", len(favourites)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(favourites) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No favourite players yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	lines := make([]string, 0, len(favourites))
	for i, p := range favourites {
		if i == maxListedFavourites {
			lines = append(lines, fmt.Sprintf("…and %d more", len(favourites)-maxListedFavourites))
			break
		}
		lines = append(lines, fmt.Sprintf("• %s (%s) avg %.2f / fanta %.2f", p.Name, p.Team, p.AverageGrade, p.AverageFantaGrade))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))
	return slack.NewBlockMessage(blocks...)
}

// fallbackText is the notification text shown by clients that cannot render blocks.
func fallbackText(message slack.Message) string {
	for _, block := range message.Blocks.BlockSet {
		if header, ok := block.(*slack.HeaderBlock); ok && header.Text != nil {
			return header.Text.Text
		}
	}
	return "fantafav update"
}
