package config

// AppConfig holds the application configuration. DBURL, RedisAddress and
// BearerToken are required; the remaining blocks are optional feature
// configuration: when a block is left empty the corresponding feature
// (SMS dispatch, asset uploads, reset emails, admin dashboard) is disabled
// rather than failing startup.
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string

	Admin  AdminConfig
	Twilio TwilioConfig
	S3     S3Config
	SMTP   SMTPConfig
}

// AdminConfig carries the credentials for the admin dashboard login. Both
// fields must be set for /api/admin-login to succeed; when absent every
// login attempt is rejected.
type AdminConfig struct {
	Username string
	Password string
}

// TwilioConfig carries the SMS gateway credentials.
type TwilioConfig struct {
	AccountSID          string
	AuthToken           string
	MessagingServiceSID string
}

// Enabled reports whether all three credentials are present.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.MessagingServiceSID != ""
}

// S3Config carries the S3-compatible storage settings for clinic logo and
// signature uploads.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != ""
}

// SMTPConfig carries the mail settings used for password-reset codes.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != ""
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
