package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/internal/platform/config"
)

func TestNewClientDisabledWithoutBrokers(t *testing.T) {
	cl, err := NewClient(config.KafkaConfig{ActionLogTopic: "t"})
	require.NoError(t, err)
	assert.Nil(t, cl)
}

func TestNewClientWithBrokers(t *testing.T) {
	cl, err := NewClient(config.KafkaConfig{Brokers: []string{"localhost:9092"}, ActionLogTopic: "t"})
	require.NoError(t, err)
	require.NotNil(t, cl)
	cl.Close()
}
