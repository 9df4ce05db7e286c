package handler

import (
	"github.com/tonipcv/user-provisioner/internal/core/ports"
	"github.com/tonipcv/user-provisioner/internal/core/service"
)

// toProvisionInput applies the interactive default policy, then lets any
// explicitly supplied field override it.
func toProvisionInput(req provisionRequest) ports.ProvisionInput {
	in := service.DefaultInput(req.Name, req.Email)

	if req.IsPremium != nil {
		in.Premium = *req.IsPremium
	}
	if req.ExpirationDate != nil {
		in.ExpirationDate = req.ExpirationDate
	}
	if req.PhoneNumber != nil {
		in.PhoneNumber = req.PhoneNumber
	}
	if req.PhoneLocalCode != nil {
		in.PhoneLocalCode = req.PhoneLocalCode
	}
	if req.ExternalID != nil {
		in.ExternalID = req.ExternalID
	}
	return in
}
