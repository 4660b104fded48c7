package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPublisherInvalidURL(t *testing.T) {
	p, err := NewPublisher("not-an-amqp-url", "user-events")
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestCloseNilPublisher(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, p.Close)
}
