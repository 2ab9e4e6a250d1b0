package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, alert Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

// MockSentMarker is a mock implementation of SentMarker.
type MockSentMarker struct {
	mock.Mock
}

func (m *MockSentMarker) MarkSent(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestDispatcher_MarksSentAfterDelivery(t *testing.T) {
	alert := Alert{NotificationID: 7, Recipient: "alice@example.com", Subject: "Low Stock Alert: Widget"}

	n := new(MockNotifier)
	n.On("Send", mock.Anything, alert).Return(nil)
	marker := new(MockSentMarker)
	marker.On("MarkSent", mock.Anything, uint(7)).Return(nil)

	d := NewDispatcher(n, marker, zap.NewNop(), time.Second)
	d.Dispatch(alert)
	d.Wait()

	n.AssertExpectations(t)
	marker.AssertExpectations(t)
}

func TestDispatcher_FailureLeavesNotificationUnsent(t *testing.T) {
	alert := Alert{NotificationID: 8, Recipient: "bob@example.com"}

	n := new(MockNotifier)
	n.On("Send", mock.Anything, alert).Return(errors.New("connection refused")).Once()
	marker := new(MockSentMarker)

	d := NewDispatcher(n, marker, zap.NewNop(), time.Second)
	d.Dispatch(alert)
	d.Wait()

	n.AssertExpectations(t)
	n.AssertNumberOfCalls(t, "Send", 1)
	marker.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)
}

func TestDispatcher_DisabledWithoutNotifier(t *testing.T) {
	marker := new(MockSentMarker)

	d := NewDispatcher(nil, marker, nil, 0)
	assert.False(t, d.Enabled())
	d.Dispatch(Alert{NotificationID: 1})
	d.Wait()

	marker.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)

	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Enabled())
	nilDispatcher.Dispatch(Alert{})
	nilDispatcher.Wait()
}
