package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
)

// RabbitMQ - structure that contains rabbit queue and channel
type RabbitMQ struct {
	Queue   amqp.Queue
	Channel *amqp.Channel
	Logger  logger.Logger
	Cfg     config.Config
}

// New - declares the status queue and returns the publisher
func New(cfg *config.Config, log logger.Logger) (*RabbitMQ, error) {
	log.Info(
		"Dialing to rabbitmq host with",
		logger.String("host", cfg.RabbitMqHost),
		logger.String("user", cfg.RabbitMqUser),
	)

	conn, err := amqp.Dial(
		fmt.Sprintf(
			"amqp://%s:%s@%s:%s/",
			cfg.RabbitMqUser,
			cfg.RabbitMqPassword,
			cfg.RabbitMqHost,
			cfg.RabbitMqPort,
		),
	)

	if err != nil {
		log.Error("Error while connecting to rabbitmq", logger.Error(err))
		return &RabbitMQ{}, err
	}

	log.Info("RabbitMQ connection is created...")

	channel, err := conn.Channel()
	if err != nil {
		log.Error("Error while connecting to channel", logger.Error(err))
		return &RabbitMQ{}, err
	}

	log.Info("RabbitMQ channel is created...")

	queue, err := channel.QueueDeclare(
		cfg.StatusQueue,
		true,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		log.Error("Error while declaring queue", logger.Error(err))
		return &RabbitMQ{}, err
	}

	return &RabbitMQ{
		Queue:   queue,
		Channel: channel,
		Logger:  log,
		Cfg:     *cfg,
	}, nil
}

func (r *RabbitMQ) PublishPipelineStatus(req *models.UpdatePipelineStage) error {
	jsonByte, err := json.MarshalIndent(req, "", "    ")
	if err != nil {
		r.Logger.Error("Error while publishing new pipeline status")
		return err
	}

	err = r.Channel.Publish(
		"",
		r.Queue.Name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        jsonByte,
		},
	)
	if err != nil {
		r.Logger.Error("Error while publishing the message", logger.Error(err))
		return err
	}

	return nil
}
