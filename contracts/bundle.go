package contracts

type ApplicationBundle interface {
	Name() string
	Encode() ([]byte, error)
}

type WebAppBundle interface {
	Name() string
	UIArchive() ([]byte, error)
	ApplicationBundle() (ApplicationBundle, error)
}

type BundleDecoder interface {
	DecodeWebApp(raw []byte) (WebAppBundle, error)
	DecodeApp(raw []byte) (ApplicationBundle, error)
}

// Classification is the outcome of splitting a raw package. UIArchive is
// populated only when WebWrapped is true.
type Classification struct {
	Bundle     ApplicationBundle
	UIArchive  []byte
	WebWrapped bool
}

type WebAppWrapper interface {
	WrapWebApp(name string, app ApplicationBundle, ui []byte) ([]byte, error)
}
