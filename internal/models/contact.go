package models

import (
	"fmt"
	"strings"
)

// ContactMessage is a contact-form submission to relay by email.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"message"`
}

const maxContactBodyLen = 10000

// Validate checks required fields and does a minimal email shape check.
func (m *ContactMessage) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if m.Body == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(m.Body) > maxContactBodyLen {
		return fmt.Errorf("message exceeds %d characters", maxContactBodyLen)
	}
	at := strings.Index(m.Email, "@")
	if at <= 0 || at == len(m.Email)-1 {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
