package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// Credentials holds the OAuth 1.0a keys used to sign Twitter API calls.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// LoadCredentials reads a twitter.properties-style key-value file.
func LoadCredentials(path string) (Credentials, error) {
	props, err := godotenv.Read(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials %s: %w", path, err)
	}
	creds := Credentials{
		ConsumerKey:       props["oauth.consumerKey"],
		ConsumerSecret:    props["oauth.consumerSecret"],
		AccessToken:       props["oauth.accessToken"],
		AccessTokenSecret: props["oauth.accessTokenSecret"],
	}
	if creds.ConsumerKey == "" || creds.ConsumerSecret == "" {
		return Credentials{}, fmt.Errorf("%s is missing oauth.consumerKey or oauth.consumerSecret", path)
	}
	return creds, nil
}

// Proxy holds optional HTTP proxy settings. It is threaded explicitly into
// client construction rather than installed into process-wide state.
type Proxy struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (p Proxy) Enabled() bool {
	return p.Host != ""
}

// URL renders the proxy for use with http.Transport.
func (p Proxy) URL() *url.URL {
	u := &url.URL{Scheme: "http", Host: fmt.Sprintf("%s:%d", p.Host, p.Port)}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u
}

// LoadProxy reads a proxy.properties file when one is present; an absent file
// simply means no proxy. A configured user without a password triggers an
// interactive prompt so the password never has to live on disk.
func LoadProxy(path string) (Proxy, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Proxy{}, nil
	}
	props, err := godotenv.Read(path)
	if err != nil {
		return Proxy{}, fmt.Errorf("load proxy config %s: %w", path, err)
	}
	p := Proxy{
		Host:     props["http.proxyHost"],
		User:     props["http.proxyUser"],
		Password: props["http.proxyPassword"],
	}
	if raw := props["http.proxyPort"]; raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Proxy{}, fmt.Errorf("bad http.proxyPort %q: %w", raw, err)
		}
		p.Port = port
	}
	if p.Enabled() && p.User != "" && p.Password == "" {
		fmt.Fprint(os.Stderr, "Please type in your proxy password: ")
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return Proxy{}, fmt.Errorf("read proxy password: %w", err)
		}
		p.Password = string(pw)
	}
	return p, nil
}
