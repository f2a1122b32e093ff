package registry

// ProtocolSIRILite is the only protocol stop discovery speaks
const ProtocolSIRILite = "SIRI-lite"

// OperatorDescriptor describes how to reach one operator's API.
// An empty BaseURL or DiscoveryPath means the operator has no usable API.
type OperatorDescriptor struct {
	Name          string `yaml:"-"`
	Protocol      string `yaml:"protocol" validate:"required"`
	BaseURL       string `yaml:"api_url" validate:"omitempty,url"`
	DiscoveryPath string `yaml:"endpoint"`
	AuthType      string `yaml:"auth_type" validate:"omitempty,oneof=basic none"`
	RequiresToken bool   `yaml:"requires_token"`
}

// Discoverable reports whether stops can be discovered for this operator
func (d OperatorDescriptor) Discoverable() bool {
	return d.Protocol == ProtocolSIRILite && d.BaseURL != "" && d.DiscoveryPath != ""
}

type registryFile struct {
	Cities    map[string][]string           `yaml:"cities"`
	Operators map[string]OperatorDescriptor `yaml:"operators"`
}
