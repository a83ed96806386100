package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

// DefaultLanguageKey names the slot holding the UI language code.
const DefaultLanguageKey = "dl_lang"

// Preferences persists the user's interface language next to the orders.
type Preferences struct {
	slot      ports.SlotStore
	key       string
	supported []string
}

// NewPreferences builds a preference store. The first supported language is
// the fallback when nothing valid is stored.
func NewPreferences(slot ports.SlotStore, key string, supported ...string) *Preferences {
	if strings.TrimSpace(key) == "" {
		key = DefaultLanguageKey
	}
	if len(supported) == 0 {
		supported = []string{"en"}
	}
	return &Preferences{slot: slot, key: key, supported: supported}
}

// Language returns the stored language, or the fallback when the slot is
// empty or holds an unsupported code.
func (p *Preferences) Language(ctx context.Context) (string, error) {
	raw, err := p.slot.Get(ctx, p.key)
	if errors.Is(err, ports.ErrSlotNotFound) {
		return p.supported[0], nil
	}
	if err != nil {
		return "", fmt.Errorf("read slot %q: %w", p.key, err)
	}
	if code, ok := p.match(string(raw)); ok {
		return code, nil
	}
	return p.supported[0], nil
}

// SetLanguage stores code after normalising it against the supported list.
func (p *Preferences) SetLanguage(ctx context.Context, code string) (string, error) {
	normalized, ok := p.match(code)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	if err := p.slot.Put(ctx, p.key, []byte(normalized)); err != nil {
		return "", fmt.Errorf("write slot %q: %w", p.key, err)
	}
	return normalized, nil
}

// Supported lists the accepted language codes.
func (p *Preferences) Supported() []string {
	return append([]string(nil), p.supported...)
}

func (p *Preferences) match(code string) (string, bool) {
	code = strings.TrimSpace(code)
	for _, s := range p.supported {
		if strings.EqualFold(s, code) {
			return s, true
		}
	}
	return "", false
}
