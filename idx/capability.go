/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package idx

import (
	"time"

	"github.com/asgardeo/spark/idx/jsonmodel"
)

// CapabilityKind identifies a well known specialized behavior of a remediation.
type CapabilityKind string

const (
	// CapabilityPoll marks a remediation the caller should re-issue after its
	// refresh interval when no user action occurs.
	CapabilityPoll CapabilityKind = "poll"
	// CapabilityResend marks a remediation that can re-send a challenge.
	CapabilityResend CapabilityKind = "resend"
	// CapabilityRecover marks a remediation offering account recovery.
	CapabilityRecover CapabilityKind = "recover"
	// CapabilitySocialIdp marks a remediation redirecting to an external
	// identity provider.
	CapabilitySocialIdp CapabilityKind = "social-idp"
	// CapabilityUnknown is the fallback for tags outside the known set. The
	// raw tag is preserved.
	CapabilityUnknown CapabilityKind = "unknown"
)

// Capability is a descriptive tag attached to a remediation. Capabilities are
// never required for a remediation to proceed; they only let callers branch
// on specialized behavior without matching raw names.
type Capability struct {
	// Kind is the capability kind, CapabilityUnknown for unrecognized tags.
	Kind CapabilityKind
	// Raw is the tag as supplied by the server.
	Raw string
	// Refresh is the polling interval, set for CapabilityPoll.
	Refresh time.Duration
	// RedirectURL is the provider redirect target, set for CapabilitySocialIdp.
	RedirectURL string
	// IdpID identifies the external provider, set for CapabilitySocialIdp.
	IdpID string
	// IdpName names the external provider, set for CapabilitySocialIdp.
	IdpName string
}

// capabilityKindFromTag maps a raw tag into the closed capability set.
func capabilityKindFromTag(tag string) CapabilityKind {
	switch tag {
	case "poll":
		return CapabilityPoll
	case "resend":
		return CapabilityResend
	case "recover":
		return CapabilityRecover
	case "social-idp":
		return CapabilitySocialIdp
	default:
		return CapabilityUnknown
	}
}

// newCapabilities derives the capability list of a remediation descriptor.
// Well known behaviors are derived from the descriptor shape; explicit tags
// are mapped with an unknown fallback.
func newCapabilities(def jsonmodel.RemediationDefinition) []Capability {
	var capabilities []Capability

	if def.Refresh != nil && *def.Refresh > 0 {
		capabilities = append(capabilities, Capability{
			Kind:    CapabilityPoll,
			Raw:     "poll",
			Refresh: time.Duration(*def.Refresh) * time.Millisecond,
		})
	}
	if def.Idp != nil {
		capabilities = append(capabilities, Capability{
			Kind:        CapabilitySocialIdp,
			Raw:         "social-idp",
			RedirectURL: def.Href,
			IdpID:       def.Idp.ID,
			IdpName:     def.Idp.Name,
		})
	}
	for _, tag := range def.Capabilities {
		capabilities = append(capabilities, Capability{
			Kind: capabilityKindFromTag(tag),
			Raw:  tag,
		})
	}

	return capabilities
}
