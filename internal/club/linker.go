package club

import (
	"context"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackUsers is the subset of the Slack API used to list workspace users.
type slackUsers interface {
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
}

// SlackLinker links members without a Slack id to workspace users with the same name.
type SlackLinker struct {
	directory Directory
	users     slackUsers
}

// NewSlackLinker creates a new linker.
func NewSlackLinker(directory Directory, users slackUsers) *SlackLinker {
	return &SlackLinker{directory: directory, users: users}
}

// LinkAll links every unlinked member whose normalized name equals exactly one Slack user's
// real or display name. Ambiguous names are skipped. It returns the number of links made.
func (l *SlackLinker) LinkAll(ctx context.Context) (int, error) {
	members, err := l.directory.GetUnlinkedMembers(ctx)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	users, err := l.users.GetUsersContext(ctx)
	if err != nil {
		return 0, err
	}

	byName := make(map[string][]string)
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		names := map[string]bool{}
		for _, n := range []string{u.RealName, u.Profile.RealName, u.Profile.DisplayName} {
			if key := normalizeName(n); key != "" {
				names[key] = true
			}
		}
		for key := range names {
			byName[key] = append(byName[key], u.ID)
		}
	}

	linked := 0
	for _, m := range members {
		ids := byName[normalizeName(m.Name)]
		if len(ids) != 1 {
			if len(ids) > 1 {
				log.Warn("Ambiguous Slack user for member", "memberID", m.ID, "name", m.Name, "candidates", len(ids))
			}
			continue
		}
		if err := l.directory.LinkSlackUser(ctx, m.ID, ids[0]); err != nil {
			log.Error("Failed to link member to Slack user", "memberID", m.ID, "error", err)
			continue
		}
		linked++
	}
	return linked, nil
}

// normalizeName lowercases and keeps letters separated by single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
