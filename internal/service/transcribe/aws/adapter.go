// Package aws implements transcribe.Adapter on Amazon Transcribe.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/rs/zerolog/log"

	"audio-compliance-pipeline/internal/models"
	"audio-compliance-pipeline/internal/service/transcribe"
)

// Adapter wraps the Amazon Transcribe client.
type Adapter struct {
	client *awstranscribe.Client
}

// New creates an Adapter from an already-resolved AWS configuration.
func New(cfg aws.Config) *Adapter {
	return &Adapter{client: awstranscribe.NewFromConfig(cfg)}
}

// StartJob submits a transcription job for one audio object.
func (a *Adapter) StartJob(ctx context.Context, job models.JobConfig) (transcribe.JobInfo, error) {
	out, err := a.client.StartTranscriptionJob(ctx, &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(job.JobName),
		Media: &types.Media{
			MediaFileUri: aws.String(job.Parameters.MediaFileURI),
		},
		MediaFormat:      types.MediaFormat(job.Parameters.MediaFormat),
		LanguageCode:     types.LanguageCode(job.Parameters.LanguageCode),
		OutputBucketName: aws.String(job.Parameters.OutputBucket),
	})
	if err != nil {
		return transcribe.JobInfo{}, fmt.Errorf("start transcription job %s: %w", job.JobName, err)
	}

	info := jobInfo(out.TranscriptionJob)
	log.Info().
		Str("jobName", info.Name).
		Str("status", info.Status).
		Str("mediaUri", job.Parameters.MediaFileURI).
		Msg("Transcription job started")
	return info, nil
}

// JobStatus fetches the current state of a transcription job.
func (a *Adapter) JobStatus(ctx context.Context, jobName string) (transcribe.JobInfo, error) {
	out, err := a.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return transcribe.JobInfo{}, fmt.Errorf("get transcription job %s: %w", jobName, err)
	}
	return jobInfo(out.TranscriptionJob), nil
}

func jobInfo(job *types.TranscriptionJob) transcribe.JobInfo {
	if job == nil {
		return transcribe.JobInfo{}
	}
	info := transcribe.JobInfo{
		Name:          aws.ToString(job.TranscriptionJobName),
		Status:        string(job.TranscriptionJobStatus),
		FailureReason: aws.ToString(job.FailureReason),
	}
	if job.Transcript != nil {
		info.TranscriptURI = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	return info
}
