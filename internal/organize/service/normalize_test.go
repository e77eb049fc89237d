package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Cloud Server", "cloud server"},
		{"nbsp to space", "Cloud\u00a0Server", "cloud server"},
		{"collapse runs", "Cloud   Server", "cloud server"},
		{"trim", "  Cloud Server  ", "cloud server"},
		{"mixed nbsp and spaces", "Serverless \u00a0 SSR", "serverless ssr"},
		{"chinese", "云服务器", "云服务器"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Cloud\u00a0Server",
		"  API   Gateway-1 ",
		"消息队列 CKafka 版",
		"Serverless  SSR",
	}
	for _, s := range inputs {
		once := normalize(s)
		assert.Equal(t, once, normalize(once), "normalize must be idempotent for %q", s)
	}
}

func TestNormalizeNBSPAgnostic(t *testing.T) {
	assert.Equal(t, normalize("Cloud Server"), normalize("Cloud\u00a0Server"))
	assert.Equal(t, normalize("云 服务器"), normalize("云\u00a0服务器"))
}

// normalizeFilename — более узкое преобразование: только NBSP, без
// регистра и схлопывания пробелов.
func TestNormalizeFilename(t *testing.T) {
	assert.Equal(t, "Cloud Server.svg", normalizeFilename("Cloud\u00a0Server.svg"))
	assert.Equal(t, "Cloud  Server.SVG", normalizeFilename("Cloud  Server.SVG"), "case and double spaces stay")
	assert.NotEqual(t, normalize("Cloud  Server"), normalizeFilename("Cloud  Server"))
}
