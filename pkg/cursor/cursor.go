// Package cursor encodes feed continuation tokens. A token names the last item of a page and
// the filter it was issued under, so a token can only resume the feed that produced it.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrMalformed = errors.New("cursor: malformed token")

type Token struct {
	Mode string `json:"m"`
	Term string `json:"t,omitempty"`
	ID   string `json:"id"`
}

func Encode(t Token) string {
	b, _ := json.Marshal(t)
	return base64.RawURLEncoding.EncodeToString(b)
}

func Decode(s string) (Token, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Token{}, ErrMalformed
	}
	var t Token
	if err := json.Unmarshal(raw, &t); err != nil {
		return Token{}, ErrMalformed
	}
	if t.ID == "" || t.Mode == "" {
		return Token{}, ErrMalformed
	}
	return t, nil
}

// Matches reports whether the token was issued under the given filter.
func (t Token) Matches(mode, term string) bool {
	return t.Mode == mode && t.Term == term
}
