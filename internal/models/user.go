package models

import "encoding/json"

// User is the identity attached to the active session.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Profile is the role-specific profile document returned by /auth/me. The
// server shapes the rest of the document differently per role, so everything
// beyond the user identity stays schemaless.
type Profile struct {
	User  User           `json:"user"`
	Extra map[string]any `json:"-"`
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if u, ok := raw["user"]; ok {
		if err := json.Unmarshal(u, &p.User); err != nil {
			return err
		}
		delete(raw, "user")
	}
	p.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		p.Extra[k] = val
	}
	return nil
}

// Session is the persistable subset of the session store. Only these three
// fields survive a process restart; loading/error/pending-verification state
// never does.
type Session struct {
	Token         string `json:"token"`
	User          *User  `json:"user"`
	Authenticated bool   `json:"isAuthenticated"`
}

// SessionStorageKey is the namespaced durable-storage key holding Session.
const SessionStorageKey = "auth-storage"
