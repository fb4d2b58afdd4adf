package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSQueue implements queueClient backed by AWS/LocalStack SQS. Jobs are
// framed as JSON message bodies; malformed bodies are acknowledged and
// dropped here so workers only ever see decodable jobs.
type SQSQueue struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSQueue creates a queue wrapper around the provided SQS client.
func NewSQSQueue(client *sqs.Client, queueURL string) *SQSQueue {
	if client == nil {
		panic("assistant: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("assistant: SQS queueURL cannot be empty")
	}
	return &SQSQueue{
		client:   client,
		queueURL: queueURL,
	}
}

func (q *SQSQueue) Send(ctx context.Context, job chatJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("assistant: failed to encode chat job: %w", err)
	}

	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("assistant: failed to send SQS message: %w", err)
	}
	return nil
}

func (q *SQSQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queuedJob, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: int32(maxMessages),
		WaitTimeSeconds:     int32(waitSeconds),
	}

	output, err := q.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to receive SQS messages: %w", err)
	}

	jobs := make([]queuedJob, 0, len(output.Messages))
	for _, msg := range output.Messages {
		var job chatJob
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &job); err != nil {
			_ = q.Delete(ctx, aws.ToString(msg.ReceiptHandle))
			continue
		}
		jobs = append(jobs, queuedJob{
			Job:           job,
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
		})
	}

	return jobs, nil
}

func (q *SQSQueue) Delete(ctx context.Context, receiptHandle string) error {
	if receiptHandle == "" {
		return nil
	}

	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("assistant: failed to delete SQS message: %w", err)
	}
	return nil
}
