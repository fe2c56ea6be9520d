package main

import (
	"context"
	"fmt"

	"charitydash/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	switch c.UploadBackend {
	case types.UploadBackendLocal:
	case types.UploadBackendS3:
		if c.S3BucketName == "" {
			return nil, fmt.Errorf("set S3_BUCKET_NAME when UPLOAD_BACKEND is s3")
		}
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}

	if c.SessionMaxAgeSec <= 0 {
		c.SessionMaxAgeSec = 86400
	}

	return c, nil
}

func newLogger(c *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.WithError(err).WithField("log_level", c.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
