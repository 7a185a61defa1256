package testutil

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"sync"

	"Recipe-Share-Backend/domain"
)

const FakeStorageBase = "https://bucket.test"

// Storage is an object store that keeps keys in memory. Uploads of files whose name starts
// with "bad" are rejected as a disallowed type.
type Storage struct {
	mu       sync.Mutex
	Disabled bool
	Objects  map[string]bool
	Deleted  []string
	// FailAfter makes the upload with this index (0-based) fail with a storage error.
	FailAfter int
	uploads   int
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string]bool{}, FailAfter: -1}
}

func (s *Storage) Enabled() bool { return !s.Disabled }

func (s *Storage) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Disabled {
		return "", domain.ErrStorageUnavailable
	}
	if strings.HasPrefix(file.Filename, "bad") {
		return "", domain.ErrFileTypeNotAllowed
	}
	if s.uploads == s.FailAfter {
		return "", errors.New("storage down")
	}
	s.uploads++
	key := folder + "/" + fileName + ".png"
	s.Objects[key] = true
	return key, nil
}

func (s *Storage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	return FakeStorageBase + "/" + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	key, ok := strings.CutPrefix(link, FakeStorageBase+"/")
	if !ok {
		return ""
	}
	return key
}

func (s *Storage) ObjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records mail instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (m *Mailer) Enabled() bool { return true }

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: toEmail, Subject: subject, Body: body})
	return nil
}
