package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
)

// itemDocument is the stored JSON shape of an item. Field names follow the
// host document paths.
type itemDocument struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	System itemSystem `json:"system"`
	Flags  itemFlags  `json:"flags"`
}

type itemSystem struct {
	Description       string `json:"description,omitempty"`
	Cost              int    `json:"cost,omitempty"`
	Cyber             bool   `json:"cyber,omitempty"`
	CyberType         string `json:"cyberType,omitempty"`
	Installed         bool   `json:"installed,omitempty"`
	CyberRequirements string `json:"cyberRequirements,omitempty"`
	CyberSlotCost     int    `json:"cyberSlotCost,omitempty"`
	CanOverclock      bool   `json:"canOverclock,omitempty"`
	Overclocked       bool   `json:"overclocked,omitempty"`
	Malfunctioning    bool   `json:"malfunctioning,omitempty"`
	Cyberware         bool   `json:"cyberware,omitempty"`
	Slickware         bool   `json:"slickware,omitempty"`
	Module            bool   `json:"module,omitempty"`
	Trained           bool   `json:"trained,omitempty"`
	Expert            bool   `json:"expert,omitempty"`
}

type itemFlags struct {
	IsCyber            bool       `json:"isCyber,omitempty"`
	InstallationType   string     `json:"installationType,omitempty"`
	InstallDate        *time.Time `json:"installDate,omitempty"`
	RemovedDate        *time.Time `json:"removedDate,omitempty"`
	SelectedSkill      string     `json:"selectedSkill,omitempty"`
	SkillRank          int        `json:"skillRank,omitempty"`
	GrantedBySkillware string     `json:"grantedBySkillware,omitempty"`
	SkillwareRank      int        `json:"skillwareRank,omitempty"`
}

func encodeItem(item domain.Item) (string, error) {
	doc := itemDocument{
		Name: item.Name,
		Type: string(item.Kind),
		System: itemSystem{
			Description:       item.Description,
			Cost:              item.Cost,
			Cyber:             item.Cyber.IsCyber,
			CyberType:         string(item.Cyber.CyberType),
			Installed:         item.Cyber.Installed,
			CyberRequirements: item.Cyber.Requirements,
			CyberSlotCost:     item.Cyber.SlotCost,
			CanOverclock:      item.Cyber.CanOverclock,
			Overclocked:       item.Cyber.Overclocked,
			Malfunctioning:    item.Cyber.Malfunctioning,
			Cyberware:         item.LegacyCyberware,
			Slickware:         item.LegacySlickware,
			Module:            item.HasModuleFlag,
			Trained:           item.Trained,
			Expert:            item.Expert,
		},
		Flags: itemFlags{
			IsCyber:            item.HasCyberFlag,
			InstallationType:   string(item.Flags.InstallationType),
			InstallDate:        optionalTime(item.Flags.InstallDate),
			RemovedDate:        optionalTime(item.Flags.RemovedDate),
			SelectedSkill:      item.Flags.SelectedSkill,
			SkillRank:          item.Flags.SkillRank,
			GrantedBySkillware: item.Flags.GrantedBySkillware,
			SkillwareRank:      item.Flags.SkillwareRank,
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode item document: %w", err)
	}
	return string(data), nil
}

func decodeItem(id, document string) (domain.Item, error) {
	var doc itemDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return domain.Item{}, fmt.Errorf("decode item %s: %w", id, err)
	}
	item := domain.Item{
		ID:              id,
		Name:            doc.Name,
		Description:     doc.System.Description,
		Kind:            domain.Kind(doc.Type),
		Cost:            doc.System.Cost,
		LegacyCyberware: doc.System.Cyberware,
		LegacySlickware: doc.System.Slickware,
		HasCyberFlag:    doc.Flags.IsCyber,
		HasModuleFlag:   doc.System.Module,
		Trained:         doc.System.Trained,
		Expert:          doc.System.Expert,
		Cyber: domain.Cyber{
			IsCyber:        doc.System.Cyber,
			CyberType:      domain.Type(doc.System.CyberType),
			Installed:      doc.System.Installed,
			Requirements:   doc.System.CyberRequirements,
			SlotCost:       doc.System.CyberSlotCost,
			CanOverclock:   doc.System.CanOverclock,
			Overclocked:    doc.System.Overclocked,
			Malfunctioning: doc.System.Malfunctioning,
		},
		Flags: domain.Flags{
			InstallationType:   domain.Type(doc.Flags.InstallationType),
			InstallDate:        derefTime(doc.Flags.InstallDate),
			RemovedDate:        derefTime(doc.Flags.RemovedDate),
			SelectedSkill:      doc.Flags.SelectedSkill,
			SkillRank:          doc.Flags.SkillRank,
			GrantedBySkillware: doc.Flags.GrantedBySkillware,
			SkillwareRank:      doc.Flags.SkillwareRank,
		},
	}
	return item.Normalize(), nil
}

func optionalTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func derefTime(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return value.UTC()
}
