package certs

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLeaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1, "should have one certificate")
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return leaf
}

func TestFileManager_GetOrCreateCertificate(t *testing.T) {
	tests := []struct {
		setup    func(t *testing.T, m *FileManager)
		name     string
		sameLeaf bool
	}{
		{
			name:  "creates certificate when none exists",
			setup: func(*testing.T, *FileManager) {},
		},
		{
			name: "reuses valid certificate",
			setup: func(t *testing.T, m *FileManager) {
				t.Helper()
				_, err := m.GetOrCreateCertificate()
				require.NoError(t, err)
			},
			sameLeaf: true,
		},
		{
			name: "replaces unreadable files",
			setup: func(t *testing.T, m *FileManager) {
				t.Helper()
				require.NoError(t, os.MkdirAll(m.certDir, 0700))
				require.NoError(t, os.WriteFile(m.certFile, []byte("not a cert"), 0600))
				require.NoError(t, os.WriteFile(m.keyFile, []byte("not a key"), 0600))
			},
		},
		{
			name: "replaces certificate close to expiry",
			setup: func(t *testing.T, m *FileManager) {
				t.Helper()
				m.now = func() time.Time { return time.Now().Add(-Validity + 24*time.Hour) }
				_, err := m.GetOrCreateCertificate()
				require.NoError(t, err)
				m.now = time.Now
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFileManager(filepath.Join(t.TempDir(), "certs"))
			tt.setup(t, m)

			var before []byte
			if data, err := os.ReadFile(m.certFile); err == nil {
				before = data
			}

			cert, err := m.GetOrCreateCertificate()
			require.NoError(t, err)

			leaf := parseLeaf(t, cert)
			assert.Equal(t, "compras dev catalog", leaf.Subject.Organization[0])
			assert.NoError(t, leaf.VerifyHostname("localhost"))
			assert.True(t, leaf.NotAfter.After(time.Now().Add(Validity-time.Hour)))

			after, err := os.ReadFile(m.certFile)
			require.NoError(t, err)
			if tt.sameLeaf {
				assert.Equal(t, before, after)
			} else {
				assert.NotEqual(t, before, after)
			}
		})
	}
}

func TestFileManager_CertificateExists(t *testing.T) {
	m := NewFileManager(t.TempDir())

	exists, err := m.CertificateExists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(m.certFile, []byte("x"), 0600))
	exists, err = m.CertificateExists()
	require.NoError(t, err)
	assert.False(t, exists, "key file still missing")

	require.NoError(t, os.WriteFile(m.keyFile, []byte("x"), 0600))
	exists, err = m.CertificateExists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileManager_TLSConfig(t *testing.T) {
	m := NewFileManager(t.TempDir())

	cfg, err := m.TLSConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	leaf := parseLeaf(t, cfg.Certificates[0])
	assert.Contains(t, leaf.DNSNames, "localhost")
	assert.True(t, leaf.IPAddresses[0].Equal(net.IPv4(127, 0, 0, 1)))

	// The written PEM is usable as a client trust root.
	pemData, err := os.ReadFile(m.CertFile())
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(pemData))
	_, err = leaf.Verify(x509.VerifyOptions{Roots: pool, DNSName: "localhost"})
	assert.NoError(t, err)
}

func TestFileManager_KeyFilePermissions(t *testing.T) {
	m := NewFileManager(t.TempDir())
	_, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	info, err := os.Stat(m.keyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
