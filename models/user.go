package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Leagues      Leagues   `json:"leagues"`
	CreatedAt    time.Time `json:"created_at"`
}

// League is a named group the user bowls in. Day is free text ("Tuesday").
type League struct {
	Name string `json:"name"`
	Day  string `json:"day,omitempty"`
}

// Leagues is stored as a JSONB array in the users table.
type Leagues []League

func (l Leagues) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Leagues) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = Leagues{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for leagues", src)
	}
	var out Leagues
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("invalid leagues json"), err)
	}
	if out == nil {
		out = Leagues{}
	}
	*l = out
	return nil
}

// Names returns the league names in order.
func (l Leagues) Names() []string {
	names := make([]string, len(l))
	for i, league := range l {
		names[i] = league.Name
	}
	return names
}
