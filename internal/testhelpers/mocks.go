package testhelpers

import (
	"github.com/stretchr/testify/mock"
)

// MockEmailService is a mock implementation of the IEmailService interface
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockEmailService) SendWelcomeEmail(to string, firstName *string) error {
	args := m.Called(to, firstName)
	return args.Error(0)
}
