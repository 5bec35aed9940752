package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type KafkaMessageQueueRepositoryImpl struct {
	conn *kafka.Conn
}

func CreateNewKafkaMessageQueueRepository(conn *kafka.Conn) MessageQueueRepository {
	return &KafkaMessageQueueRepositoryImpl{conn: conn}
}

func (r *KafkaMessageQueueRepositoryImpl) Publish(ctx context.Context, key string, value []byte) (err error) {
	msg := kafka.Message{
		Value: value,
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	_, err = r.conn.WriteMessages(msg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Msg("")
		return
	}

	return
}
