//go:build !windows

package wua

type unsupportedService struct{}

// NewService returns a Service whose Open always fails with ErrUnsupportedPlatform.
func NewService() Service {
	return unsupportedService{}
}

func (unsupportedService) Open() (Session, error) {
	return nil, ErrUnsupportedPlatform
}
