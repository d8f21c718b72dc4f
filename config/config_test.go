package config

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"zonesync/common"
)

const tomlConfig = `
[service]
name = "router"
refresh_rate = "5m"

[provider]
type = "cloudflare"
[provider.config]
api_token = "secret"
ttl = 300

[address]
type = "http"
endpoint = "https://api.ipify.org"
[address.config]
timeout = "10s"

[[host]]
subdomain = "home"
zone = "example.com"

[[host]]
subdomain = ""
zone = "example.com"
`

func TestDecodeTOML(t *testing.T) {
	var conf Config
	require.NoError(t, toml.Unmarshal([]byte(tomlConfig), &conf))

	require.Equal(t, "router", conf.Service.Name)
	require.Equal(t, common.Duration(5*time.Minute), conf.Service.RefreshRate)
	require.Equal(t, "cloudflare", conf.Provider.Type)
	require.Equal(t, "http", conf.Address.Type)
	require.Len(t, conf.Hosts, 2)
	require.Equal(t, Host{Subdomain: "home", Zone: "example.com"}, conf.Hosts[0])
	require.Equal(t, Host{Subdomain: "", Zone: "example.com"}, conf.Hosts[1])

	var pc ProviderCloudflareConfig
	require.NoError(t, common.WeakDecodeMap(conf.Provider.Config, &pc))
	require.Equal(t, "secret", pc.APIToken)
	require.Equal(t, 300, pc.TTL)

	var ac AddressHTTPConfig
	require.NoError(t, common.WeakDecodeMap(conf.Address.Config, &ac))
	require.Equal(t, common.Duration(10*time.Second), ac.Timeout)
}

const yamlConfig = `
service:
  name: router
provider:
  type: cloudflare
address:
  type: static
  endpoint: 203.0.113.7
host:
  - subdomain: home
    zone: example.com
`

func TestDecodeYAML(t *testing.T) {
	var conf Config
	require.NoError(t, yaml.Unmarshal([]byte(yamlConfig), &conf))

	require.Equal(t, "static", conf.Address.Type)
	require.Equal(t, "203.0.113.7", conf.Address.Endpoint)
	require.Len(t, conf.Hosts, 1)
}
