package core

import "github.com/smarty/happy/contracts"

// BundleClassifier splits a raw package into its application bundle and,
// when the package is web-wrapped, its UI archive. Both components are fully
// decoded before the classification is returned.
type BundleClassifier struct {
	decoder contracts.BundleDecoder
}

func NewBundleClassifier(decoder contracts.BundleDecoder) *BundleClassifier {
	return &BundleClassifier{decoder: decoder}
}

func (this *BundleClassifier) Classify(raw []byte) (contracts.Classification, error) {
	web, err := this.decoder.DecodeWebApp(raw)
	if err != nil {
		return this.classifyApp(raw)
	}

	ui, err := web.UIArchive()
	if err != nil {
		return contracts.Classification{}, contracts.NewDecodeError("resolve ui archive of "+web.Name(), err)
	}
	app, err := web.ApplicationBundle()
	if err != nil {
		return contracts.Classification{}, contracts.NewDecodeError("resolve happ bundle of "+web.Name(), err)
	}
	return contracts.Classification{Bundle: app, UIArchive: ui, WebWrapped: true}, nil
}

func (this *BundleClassifier) classifyApp(raw []byte) (contracts.Classification, error) {
	app, err := this.decoder.DecodeApp(raw)
	if err != nil {
		return contracts.Classification{}, contracts.NewDecodeError("decode happ file", err)
	}
	return contracts.Classification{Bundle: app}, nil
}
