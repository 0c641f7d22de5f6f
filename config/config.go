// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Auth bundles everything the OTP and token services need so that
// they never reach into viper themselves.
type Auth struct {
	OTPCodeLength   int
	OTPExpiry       time.Duration
	JWTSecret       string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
	SessionLifetime time.Duration
	// SecureCookies mirrors the deployment mode: false only when
	// host.debug is set.
	SecureCookies bool
	LandingPath   string
	LoginPath     string
	VerifyPath    string
}

// AuthFromViper builds the auth config out of the values loaded by Setup.
func AuthFromViper() Auth {
	return Auth{
		OTPCodeLength:   v.GetInt("otp.code_length"),
		OTPExpiry:       v.GetDuration("otp.expiry"),
		JWTSecret:       v.GetString("jwt.secret"),
		AccessLifetime:  v.GetDuration("jwt.access_lifetime"),
		RefreshLifetime: v.GetDuration("jwt.refresh_lifetime"),
		SessionLifetime: v.GetDuration("session.lifetime"),
		SecureCookies:   !v.GetBool("host.debug"),
		LandingPath:     v.GetString("host.landing_path"),
		LoginPath:       "/api/auth/request-code",
		VerifyPath:      "/api/auth/verify",
	}
}

// Mail holds the SMTP transport settings for outbound OTP mail.
type Mail struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func MailFromViper() Mail {
	return Mail{
		Host:     v.GetString("mail.host"),
		Port:     v.GetInt("mail.port"),
		Sender:   v.GetString("mail.sender"),
		Password: v.GetString("mail.password"),
	}
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.debug", "host_debug")
	v.BindEnv("host.landing_path", "host_landing_path")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.access_lifetime", "jwt_access_lifetime")
	v.BindEnv("jwt.refresh_lifetime", "jwt_refresh_lifetime")

	v.BindEnv("otp.code_length", "otp_code_length")
	v.BindEnv("otp.expiry", "otp_expiry")

	v.BindEnv("session.lifetime", "session_lifetime")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.debug", false)
	v.SetDefault("host.landing_path", "/")

	v.SetDefault("jwt.access_lifetime", 30*time.Minute)
	v.SetDefault("jwt.refresh_lifetime", 7*24*time.Hour)

	v.SetDefault("otp.code_length", 6)
	v.SetDefault("otp.expiry", 10*time.Minute)

	v.SetDefault("session.lifetime", 24*time.Hour)

	v.SetDefault("mail.port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("otp.code_length") < 4 || v.GetInt("otp.code_length") > 10 {
		return errors.New("otp.code_length must be between 4 and 10")
	}

	if v.GetDuration("otp.expiry") <= 0 {
		return errors.New("otp.expiry must be bigger than 0")
	}

	if v.GetDuration("jwt.access_lifetime") <= 0 || v.GetDuration("jwt.refresh_lifetime") <= 0 {
		return errors.New("token lifetimes must be bigger than 0")
	}

	if v.GetDuration("jwt.access_lifetime") >= v.GetDuration("jwt.refresh_lifetime") {
		return errors.New("jwt.access_lifetime must be shorter than jwt.refresh_lifetime")
	}

	if v.GetString("mail.sender") == "" {
		return errors.New("mail.sender can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty")
	}

	return nil
}
