// Command jobtool drives a transcription job by hand: it can poll a job
// until it finishes and push the completed result through the normal
// transcript path. The event-driven service never polls; this tool exists
// for operators re-driving stuck or replayed jobs.
package main

import (
	"context"
	"flag"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"audio-compliance-pipeline/internal/app"
	"audio-compliance-pipeline/internal/config"
	"audio-compliance-pipeline/internal/events"
	"audio-compliance-pipeline/internal/pipeline"
	s3store "audio-compliance-pipeline/internal/service/store/s3"
	"audio-compliance-pipeline/internal/service/transcribe"
	awstranscribe "audio-compliance-pipeline/internal/service/transcribe/aws"
)

func main() {
	jobName := flag.String("job", "", "transcription job name to process")
	wait := flag.Bool("wait", false, "poll until the job completes before processing")
	pollInterval := flag.Duration("poll", 0, "poll interval when waiting (default from TRANSCRIBE_POLL_INTERVAL)")
	maxWait := flag.Duration("timeout", 0, "overall wait timeout (default from TRANSCRIBE_MAX_WAIT)")
	flag.Parse()

	if *jobName == "" {
		log.Fatal("missing required -job flag")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	application := app.New(cfg)

	if *pollInterval <= 0 {
		*pollInterval = cfg.Transcription.PollInterval
	}
	if *maxWait <= 0 {
		*maxWait = cfg.Transcription.MaxWait
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.AWSRegion))
	if err != nil {
		log.Fatalf("failed to load AWS configuration: %v", err)
	}

	st := s3store.New(awsCfg)
	adapter := awstranscribe.New(awsCfg)
	publisher := events.New(&events.Config{
		Enabled:         cfg.Kafka.Enabled,
		Brokers:         cfg.Kafka.Brokers,
		TopicTranscript: cfg.Kafka.TopicTranscript,
		TopicAudit:      cfg.Kafka.TopicAudit,
		Principal:       cfg.Kafka.Principal,
	})
	defer publisher.Close()

	dispatcher := pipeline.NewDispatcher(cfg, st, adapter, publisher, application.Logger)

	ctx := context.Background()

	if *wait {
		log.Printf("waiting for job %s (poll %s, timeout %s)", *jobName, *pollInterval, *maxWait)
		if _, err := transcribe.WaitForCompletion(ctx, adapter, *jobName, *pollInterval, *maxWait); err != nil {
			log.Fatalf("wait for job: %v", err)
		}
	}

	if err := dispatcher.ProcessCompletedJob(ctx, *jobName); err != nil {
		log.Fatalf("process job: %v", err)
	}

	log.Printf("job %s processed", *jobName)
}
