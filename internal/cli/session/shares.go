package session

import (
	"time"

	"github.com/HolmesInc/data-storage/internal/cli/api"
)

// Share lifecycle. Shares are minted per file; revoking one token never
// touches the others.

// EnsureShares returns the file's share links, creating the first one if none
// exist yet. Viewing a file's shares therefore always yields at least one
// working link.
func (s *Session) EnsureShares(fileID string) ([]api.Share, error) {
	shares, err := s.gw.ListShares(fileID)
	if err != nil {
		return nil, s.wrap(err)
	}
	if len(shares) > 0 {
		return shares, nil
	}

	if _, err := s.gw.CreateShare(fileID, nil); err != nil {
		return nil, s.wrap(err)
	}
	shares, err = s.gw.ListShares(fileID)
	if err != nil {
		return nil, s.wrap(err)
	}
	return shares, nil
}

// CreateShare mints a new link. A nil expiry means the link never expires.
func (s *Session) CreateShare(fileID string, expiresAt *time.Time) (*api.Share, error) {
	share, err := s.gw.CreateShare(fileID, expiresAt)
	if err != nil {
		return nil, s.wrap(err)
	}
	return share, nil
}

// RevokeShare invalidates one link immediately.
func (s *Session) RevokeShare(shareID string) error {
	if err := s.gw.DeleteShare(shareID); err != nil {
		return s.wrap(err)
	}
	return nil
}

// DownloadURL derives the public URL for a share token.
func (s *Session) DownloadURL(token string) string {
	return s.gw.ShareDownloadURL(token)
}

// AuthenticatedDownload fetches a file the session owns by minting a share
// and downloading through the public link, so owner downloads and shared
// downloads exercise the same server path.
func (s *Session) AuthenticatedDownload(fileID, dest string) error {
	share, err := s.gw.CreateShare(fileID, nil)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.gw.DownloadToFile(s.gw.ShareDownloadURL(share.Token), dest); err != nil {
		return s.wrap(err)
	}
	return nil
}
