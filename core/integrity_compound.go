package core

import "github.com/smarty/happy/contracts"

type CompoundIntegrityCheck struct {
	inners []contracts.IntegrityCheck
}

func NewCompoundIntegrityCheck(inners ...contracts.IntegrityCheck) *CompoundIntegrityCheck {
	return &CompoundIntegrityCheck{inners: inners}
}

func (this *CompoundIntegrityCheck) Verify(listing []contracts.ArchiveItem, localPath string) error {
	for _, inner := range this.inners {
		err := inner.Verify(listing, localPath)
		if err != nil {
			return err
		}
	}
	return nil
}
