package utils

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
)

const (
	maxNameLength  = 80
	maxEmojiLength = 32
)

// plainText reports whether s can be stored as TEXT: valid UTF-8 without
// NUL bytes.
func plainText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// checkName trims name and rejects empty or overlong values.
func checkName(name, what string) (string, error) {
	if !plainText(name) {
		return "", errors.Validation(what + " name must be valid UTF-8 without NUL characters")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.Validation(what + " name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", errors.Validation(what + " name is too long")
	}
	return trimmed, nil
}

type WorkspaceValidator struct{}

// Name returns the trimmed workspace name.
func (v *WorkspaceValidator) Name(name domain.WorkspaceName) (domain.WorkspaceName, error) {
	return checkName(name, "Workspace")
}

// Member checks an invitee identity.
func (v *WorkspaceValidator) Member(user domain.User) error {
	if strings.TrimSpace(user.Id) == "" {
		return errors.Validation("Member id is required")
	}
	if !plainText(user.Id) {
		return errors.Validation("Member id must be valid UTF-8 without NUL characters")
	}
	if _, err := checkName(user.Name, "Member"); err != nil {
		return err
	}
	return nil
}

type ChannelValidator struct{}

// Name returns the trimmed channel name.
func (v *ChannelValidator) Name(name domain.ChannelName) (domain.ChannelName, error) {
	return checkName(name, "Channel")
}

type MessageValidator struct {
	MaxLength int // runes
}

// Text accepts empty text only when an attachment is present.
func (v *MessageValidator) Text(text domain.MsgText, hasAttachment bool) error {
	if !plainText(text) {
		return errors.Validation("Text must be valid UTF-8 without NUL characters")
	}
	if strings.TrimSpace(text) == "" && !hasAttachment {
		return errors.Validation("Text is required without an attachment")
	}
	if utf8.RuneCountInString(text) > v.MaxLength {
		return errors.Validation("Text is too long")
	}
	return nil
}

func (v *MessageValidator) Attachment(a *domain.Attachment) error {
	if a == nil {
		return nil
	}
	u, err := url.Parse(a.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Validation("Attachment url must be an absolute http(s) url")
	}
	typ, sub, ok := strings.Cut(a.MimeType, "/")
	if !ok || typ == "" || sub == "" || strings.ContainsAny(a.MimeType, " \t") {
		return errors.Validation("Attachment mime type is invalid")
	}
	return nil
}

type ReactionValidator struct{}

func (v *ReactionValidator) Emoji(emoji domain.Emoji) error {
	if emoji == "" {
		return errors.Validation("Emoji is required")
	}
	if !plainText(emoji) {
		return errors.Validation("Emoji must be valid UTF-8 without NUL characters")
	}
	if utf8.RuneCountInString(emoji) > maxEmojiLength {
		return errors.Validation("Emoji is too long")
	}
	if strings.IndexFunc(emoji, unicode.IsSpace) >= 0 {
		return errors.Validation("Emoji must not contain whitespace")
	}
	return nil
}
