// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"time"

	"github.com/curioswitch/go-curiostack/config"
)

// AI configures the model used to extract recipes.
type AI struct {
	// Provider is the model API, gemini or openai.
	Provider string `koanf:"provider"`

	// Model is the name of the model, e.g. gemini-2.5-flash.
	Model string `koanf:"model"`
}

// Storage configures where images are stored.
type Storage struct {
	// Bucket is the Cloud Storage bucket for images. If empty, <project>-public is used.
	Bucket string `koanf:"bucket"`
}

// Fetch configures requests to recipe sites.
type Fetch struct {
	// Timeout bounds each request.
	Timeout time.Duration `koanf:"timeout"`

	// UserAgent is sent with each request.
	UserAgent string `koanf:"useragent"`
}

// Identity configures how the user of a request is determined.
type Identity struct {
	// Firebase enables Firebase authentication, the user is the UID of the ID token.
	Firebase bool `koanf:"firebase"`

	// DefaultUserID is the user of requests when Firebase is disabled.
	DefaultUserID string `koanf:"defaultuserid"`
}

type Config struct {
	config.Common

	AI       AI       `koanf:"ai"`
	Storage  Storage  `koanf:"storage"`
	Fetch    Fetch    `koanf:"fetch"`
	Identity Identity `koanf:"identity"`
}

// ImageBucket returns the bucket to store images in.
func (c *Config) ImageBucket() string {
	if c.Storage.Bucket != "" {
		return c.Storage.Bucket
	}
	return c.Google.Project + "-public"
}
