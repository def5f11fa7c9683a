package bot

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

func newTestBot() *Bot {
	return &Bot{
		config: Config{FormBaseURL: "https://forms.example.org/", ChannelID: -100123},
		logger: zap.NewNop(),
	}
}

func TestNew_DefaultUpdateTimeout(t *testing.T) {
	b := New(nil, nil, Config{}, zap.NewNop())
	if b.config.UpdateTimeout != 60 {
		t.Errorf("UpdateTimeout = %d, want 60", b.config.UpdateTimeout)
	}
}

func TestStartReply_ActiveUser(t *testing.T) {
	b := newTestBot()
	user := &entity.User{IsActive: true}

	text := b.startReply(user, 42)
	if !strings.Contains(text, "уже подтверждена") {
		t.Errorf("active reply missing confirmation: %q", text)
	}
	if strings.Contains(text, "invite_form") {
		t.Errorf("active reply should not carry a form link: %q", text)
	}
}

func TestStartReply_UnknownUserGetsLinkAndWarning(t *testing.T) {
	b := newTestBot()

	text := b.startReply(nil, 42)
	if !strings.Contains(text, "https://forms.example.org/invite_form?id=42") {
		t.Errorf("reply missing personalized link: %q", text)
	}
	if !strings.Contains(text, "одноразовая") {
		t.Errorf("reply missing one-time-use warning: %q", text)
	}
}

func TestStartReply_InactiveUserGetsLink(t *testing.T) {
	b := newTestBot()
	user := &entity.User{IsActive: false}

	text := b.startReply(user, 77)
	if !strings.Contains(text, "invite_form?id=77") {
		t.Errorf("inactive reply missing form link: %q", text)
	}
}
