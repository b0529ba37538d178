package conversation

import "encoding/json"

// Session owns the full, unbounded turn history for one user interaction.
// The session token that identifies it is minted by the web layer; a session
// cycles between empty and active indefinitely — rating submission clears it
// back to empty.
type Session struct {
	id       string
	userInfo map[string]string
	history  []Turn
}

func NewSession(id string) *Session {
	return &Session{id: id}
}

func (s *Session) ID() string {
	return s.id
}

// SetUserInfo attaches the optional identity mapping supplied by the
// external registration step.
func (s *Session) SetUserInfo(info map[string]string) {
	s.userInfo = info
}

func (s *Session) UserInfo() map[string]string {
	return s.userInfo
}

// Append adds a completed turn. Callers append only after a successful
// generation; a failed generation leaves the history untouched.
func (s *Session) Append(turn Turn) {
	s.history = append(s.history, turn)
}

// History returns a copy of the full turn history in order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Len() int {
	return len(s.history)
}

// Clear drops the history and user info, returning the session to its
// initial empty state.
func (s *Session) Clear() {
	s.history = nil
	s.userInfo = nil
}

// sessionRecord is the serialized form used by the file and cache backed
// stores.
type sessionRecord struct {
	ID       string            `json:"id"`
	UserInfo map[string]string `json:"user_info,omitempty"`
	History  []Turn            `json:"history"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecord{
		ID:       s.id,
		UserInfo: s.userInfo,
		History:  s.history,
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	s.id = rec.ID
	s.userInfo = rec.UserInfo
	s.history = rec.History
	return nil
}
