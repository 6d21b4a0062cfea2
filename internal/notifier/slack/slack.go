package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/club"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/slack-go/slack"
)

// ErrNoRecipient is returned when a member has no Slack user and no fallback channel is configured.
var ErrNoRecipient = errors.New("no Slack recipient for member")

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier delivers notifications to members by Slack direct message.
// Members without a linked Slack user are mentioned by name in the fallback channel.
type Notifier struct {
	api       slackClient
	channelID string
	directory club.Directory
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, directory club.Directory, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, directory, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, directory club.Directory, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		directory: directory,
		metrics:   metrics,
	}
}

// Notify renders n for the target member and posts it.
func (s *Notifier) Notify(ctx context.Context, n notifier.Notification) error {
	recipient, name, err := s.recipient(ctx, n.UserID)
	if err != nil {
		return err
	}
	msg := formatNotification(n, name)
	_, _, err = s.sendMessage(ctx, recipient, msg, n.DryRun)
	return err
}

// recipient returns the channel to post to and the member name used in the message.
func (s *Notifier) recipient(ctx context.Context, userID string) (string, string, error) {
	member, err := s.directory.GetMember(ctx, userID)
	if err != nil && !errors.Is(err, club.ErrMemberNotFound) {
		return "", "", fmt.Errorf("failed to look up member %s: %w", userID, err)
	}
	if member != nil && member.SlackUserID != nil {
		return *member.SlackUserID, member.Name, nil
	}
	if s.channelID == "" {
		return "", "", fmt.Errorf("%w %s", ErrNoRecipient, userID)
	}
	if member != nil {
		return s.channelID, member.Name, nil
	}
	return s.channelID, userID, nil
}

func (s *Notifier) sendMessage(ctx context.Context, channelID string, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	respChannel, timestamp, err := s.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", respChannel, "timestamp", timestamp)
	return respChannel, timestamp, nil
}

// formatNotification creates the Block Kit message for a notification.
func formatNotification(n notifier.Notification, name string) slack.Message {
	var header, body string
	switch n.Status {
	case activity.StatusAccepted:
		header = "🚣 You're in the boat!"
		body = fmt.Sprintf("Hi %s, you have been accepted for activity `%s`.", name, n.ActivityID)
	case activity.StatusRejected:
		header = "Application not accepted"
		body = fmt.Sprintf("Hi %s, your application for activity `%s` was not accepted this time.", name, n.ActivityID)
	case activity.StatusKicked:
		header = "Removed from activity"
		body = fmt.Sprintf("Hi %s, you are no longer participating in activity `%s`.", name, n.ActivityID)
	case activity.StatusActivityFull:
		header = "Activity is full"
		body = fmt.Sprintf("Hi %s, all positions on activity `%s` are taken. You are on the waitlist.", name, n.ActivityID)
	case activity.StatusChanges:
		header = "📅 Activity updated"
		body = fmt.Sprintf("Hi %s, activity `%s` has changed.\n*New date:* %s\n*New location:* %s",
			name, n.ActivityID, n.NewDate, n.NewLocation)
	case activity.StatusWithdrawn:
		header = "Application withdrawn"
		body = fmt.Sprintf("Hi %s, your application for activity `%s` was withdrawn.", name, n.ActivityID)
	case activity.StatusDeleted:
		header = "Activity cancelled"
		body = fmt.Sprintf("Hi %s, activity `%s` has been cancelled.", name, n.ActivityID)
	default:
		header = "Activity update"
		body = fmt.Sprintf("Hi %s, there is an update for activity `%s`.", name, n.ActivityID)
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", body, false, false), nil, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Status: %s", n.Status), false, false)),
	}
	msg := slack.NewBlockMessage(blocks...)
	msg.Text = header
	return msg
}
