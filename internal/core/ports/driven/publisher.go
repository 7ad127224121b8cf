package driven

import "context"

// Publisher pushes a finished artifact to remote storage so callers can
// download it. The push is all-or-nothing: there is no partial-publish
// state, and a publish failure fails the whole request even though the
// local artifact exists.
type Publisher interface {
	Publish(ctx context.Context, localPath, remoteName string) error
}
