package types

const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"3000"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// JSON record files and login.json live here
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// Uploads
	UploadBackend   string `envconfig:"UPLOAD_BACKEND" default:"local"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"public/uploads/events"`
	UploadURLPrefix string `envconfig:"UPLOAD_URL_PREFIX" default:"/uploads/events"`
	S3BucketName    string `envconfig:"S3_BUCKET_NAME"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`

	// Session Configuration
	SessionDir        string `envconfig:"SESSION_DIR" default:"data/sessions"`
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"charitydash_session"`
	SessionMaxAgeSec  int    `envconfig:"SESSION_MAX_AGE_SEC" default:"86400"` // 24 hours
	CookieSecure      bool   `envconfig:"COOKIE_SECURE" default:"false"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Requests per minute per IP on POST /login
	LoginRateLimit int `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
