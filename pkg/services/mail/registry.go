package mail

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry resolves named SMTP accounts from a profile file, so credentials
// stay in local configuration instead of command lines.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetAccount(ctx context.Context, profile string) (Account, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (ir *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range ir.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

// GetAccount reads one profile section. Missing host and port keys fall back
// to the Gmail defaults; from and password stay empty when absent.
func (ir *iniRegistry) GetAccount(_ context.Context, profile string) (Account, error) {
	if !ir.cfg.HasSection(profile) {
		return Account{}, fmt.Errorf("smtp profile %s not found", profile)
	}
	section := ir.cfg.Section(profile)

	acct := DefaultAccount()
	if host := section.Key("host").String(); host != "" {
		acct.Host = host
	}
	if port, err := section.Key("port").Int(); err == nil && port > 0 {
		acct.Port = port
	}
	acct.From = section.Key("from").String()
	acct.Password = section.Key("password").String()
	acct.UseStartTLS = section.Key("use_starttls").MustBool(false)

	return acct, nil
}
