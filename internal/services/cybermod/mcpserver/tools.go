package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/core/dice"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/app"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Backend is the cybermod surface the tools call.
type Backend interface {
	Actor(ctx context.Context, actorID string) (domain.Actor, error)
	Inspect(ctx context.Context, actorID string) (app.Inspection, error)
	Install(ctx context.Context, req app.BeginRequest, answers app.Answers) (app.Resolution, error)
	ResolveSkillware(ctx context.Context, actorID, itemID, skill string) (domain.SkillwarePlan, error)
	RemoveMod(ctx context.Context, actorID, itemID string) (app.RemoveResult, error)
	OverclockItem(ctx context.Context, actorID, itemID string) (app.OverclockResult, error)
	SanitySave(ctx context.Context, actorID string) (app.SanitySaveResult, error)
}

var _ Backend = (*app.Service)(nil)

// ActorInput addresses one actor.
type ActorInput struct {
	ActorID string `json:"actor_id" jsonschema:"actor identifier"`
}

// ItemInput addresses one owned item.
type ItemInput struct {
	ActorID string `json:"actor_id" jsonschema:"actor identifier"`
	ItemID  string `json:"item_id" jsonschema:"item identifier owned by the actor"`
}

// ClassifyResult reports an item classification.
type ClassifyResult struct {
	ItemID      string `json:"item_id"`
	Type        string `json:"type" jsonschema:"cyberware, slickware or none"`
	Rule        string `json:"rule,omitempty" jsonschema:"classifier rule that decided"`
	Installed   bool   `json:"installed"`
	Installable bool   `json:"installable"`
	Skillware   bool   `json:"skillware"`
	Rank        int    `json:"rank,omitempty" jsonschema:"skillware rank from 1 to 3"`
}

// InstallableResult reports whether an item could be installed as classified.
type InstallableResult struct {
	ItemID      string `json:"item_id"`
	Installable bool   `json:"installable"`
}

// SlotsResult reports slot capacity.
type SlotsResult struct {
	Cyberware      int  `json:"cyberware"`
	Slickware      int  `json:"slickware"`
	HasSlicksocket bool `json:"has_slicksocket"`
}

// ModSummary is one installed mod.
type ModSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Overclocked    bool   `json:"overclocked,omitempty"`
	Malfunctioning bool   `json:"malfunctioning,omitempty"`
}

// InstalledModsResult lists installed mods and the overclock state.
type InstalledModsResult struct {
	Cyberware       []ModSummary `json:"cyberware"`
	Slickware       []ModSummary `json:"slickware"`
	Slots           SlotsResult  `json:"slots"`
	OverclockLevel  int          `json:"overclock_level"`
	IsOverclocked   bool         `json:"is_overclocked"`
	OverclockEffect string       `json:"overclock_effect,omitempty"`
}

// MissingPrerequisitesResult lists unmet requirement tokens.
type MissingPrerequisitesResult struct {
	Requirements string   `json:"requirements"`
	Missing      []string `json:"missing"`
}

// ValidateInput asks whether an item may be installed.
type ValidateInput struct {
	ActorID string `json:"actor_id" jsonschema:"actor identifier"`
	ItemID  string `json:"item_id" jsonschema:"item identifier"`
	Type    string `json:"type,omitempty" jsonschema:"requested type: cyberware or slickware; blank uses the classified type"`
}

// ValidateResult is a validation verdict.
type ValidateResult struct {
	Valid   bool     `json:"valid"`
	Type    string   `json:"type,omitempty"`
	Code    string   `json:"code,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// ResolveOutcomeInput previews the outcome of a given roll.
type ResolveOutcomeInput struct {
	ActorID     string `json:"actor_id" jsonschema:"actor identifier"`
	ItemID      string `json:"item_id" jsonschema:"item identifier"`
	Type        string `json:"type,omitempty" jsonschema:"installation type; blank uses the classified type"`
	Rolled      int    `json:"rolled" jsonschema:"d100 face kept for the check"`
	Target      int    `json:"target" jsonschema:"check target"`
	StressBonus int    `json:"stress_bonus,omitempty" jsonschema:"target bonus bought with stress, in steps of 10"`
}

// OutcomeResult is a graded installation outcome.
type OutcomeResult struct {
	Grade               string   `json:"grade"`
	InstallationSuccess bool     `json:"installation_success"`
	Malfunctioning      bool     `json:"malfunctioning"`
	SlotsUsed           int      `json:"slots_used"`
	StressReduction     int      `json:"stress_reduction,omitempty"`
	StressGain          int      `json:"stress_gain,omitempty"`
	Damage              int      `json:"damage,omitempty"`
	SanityLoss          int      `json:"sanity_loss,omitempty"`
	OverclockLevel      int      `json:"overclock_level"`
	IsOverclocked       bool     `json:"is_overclocked"`
	Triggers            []string `json:"triggers,omitempty" jsonschema:"tables drawn as follow-ups"`
}

// OverclockEffectInput names an overclock level.
type OverclockEffectInput struct {
	Level  int    `json:"level" jsonschema:"overclock level"`
	Locale string `json:"locale,omitempty" jsonschema:"BCP 47 locale, defaults to the server locale"`
}

// OverclockEffectResult is the effect text of a level.
type OverclockEffectResult struct {
	Level  int    `json:"level"`
	Effect string `json:"effect"`
}

// ResolveSkillwareInput binds a skill to installed skillware.
type ResolveSkillwareInput struct {
	ActorID string `json:"actor_id" jsonschema:"actor identifier"`
	ItemID  string `json:"item_id" jsonschema:"skillware item identifier"`
	Skill   string `json:"skill" jsonschema:"skill name eligible at the skillware rank"`
}

// ResolveSkillwareResult reports the bound skill.
type ResolveSkillwareResult struct {
	Skill          string `json:"skill"`
	Rank           int    `json:"rank"`
	RankName       string `json:"rank_name"`
	NewSkillID     string `json:"new_skill_id,omitempty"`
	AlreadyPresent bool   `json:"already_present"`
}

// InstallInput runs a whole installation with fixed answers.
type InstallInput struct {
	ActorID      string `json:"actor_id" jsonschema:"actor identifier"`
	ItemID       string `json:"item_id" jsonschema:"item identifier"`
	Type         string `json:"type,omitempty" jsonschema:"requested type; blank uses the classified type"`
	StressChoice int    `json:"stress_choice,omitempty" jsonschema:"stress points taken, 0 to 3"`
	Skill        string `json:"skill,omitempty" jsonschema:"assisting skill: athletics, combat or first_aid"`
	Mode         string `json:"mode,omitempty" jsonschema:"normal, advantage or disadvantage"`
	Skillware    string `json:"skillware,omitempty" jsonschema:"skill bound to skillware after a successful install"`
}

// InstallResult reports a committed installation.
type InstallResult struct {
	Target          int                     `json:"target"`
	Faces           []int                   `json:"faces"`
	Rolled          int                     `json:"rolled"`
	Outcome         OutcomeResult           `json:"outcome"`
	OverclockEffect string                  `json:"overclock_effect,omitempty"`
	SkillChoices    []string                `json:"skill_choices,omitempty"`
	Skillware       *ResolveSkillwareResult `json:"skillware,omitempty"`
}

// RemoveResult reports a removal.
type RemoveResult struct {
	ItemID  string `json:"item_id"`
	Removed bool   `json:"removed"`
}

// OverclockResult reports an overclock.
type OverclockResult struct {
	Changed bool   `json:"changed"`
	Level   int    `json:"level"`
	Effect  string `json:"effect,omitempty"`
}

// SanitySaveResult reports a sanity save.
type SanitySaveResult struct {
	Grade  string `json:"grade"`
	Rolled int    `json:"rolled"`
	Target int    `json:"target"`
	Stress *int   `json:"stress,omitempty"`
}

// ClassifyTool defines the classification tool.
func ClassifyTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_classify", Description: "Classify an item as cyberware, slickware, or not a cybermod"}
}

// IsInstallableTool defines the installability tool.
func IsInstallableTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_is_installable", Description: "Report whether an item is a cybermod that is not yet installed"}
}

// SlotsTool defines the slot capacity tool.
func SlotsTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_slots", Description: "Compute an actor's cyberware and slickware slot capacity"}
}

// InstalledModsTool defines the installed mods tool.
func InstalledModsTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_installed_mods", Description: "List an actor's installed mods and overclock level"}
}

// MissingPrerequisitesTool defines the prerequisites tool.
func MissingPrerequisitesTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_missing_prerequisites", Description: "List the requirement tokens of an item the actor does not satisfy"}
}

// ValidateTool defines the validation tool.
func ValidateTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_validate", Description: "Check whether an item may be installed, without rolling"}
}

// ResolveOutcomeTool defines the outcome preview tool.
func ResolveOutcomeTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_resolve_outcome", Description: "Preview the consequences of a given installation roll without writing anything"}
}

// OverclockEffectTool defines the overclock effect tool.
func OverclockEffectTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_overclock_effect", Description: "Describe the effect of an overclock level"}
}

// ResolveSkillwareTool defines the skillware binding tool.
func ResolveSkillwareTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_resolve_skillware", Description: "Bind a skill to installed skillware and grant it to the actor"}
}

// InstallTool defines the installation tool.
func InstallTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_install", Description: "Roll and commit a cybermod installation with the given choices"}
}

// RemoveTool defines the removal tool.
func RemoveTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_remove", Description: "Uninstall a cybermod"}
}

// OverclockTool defines the overclock tool.
func OverclockTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_overclock", Description: "Overclock an installed item"}
}

// SanitySaveTool defines the sanity save tool.
func SanitySaveTool() *mcp.Tool {
	return &mcp.Tool{Name: "cybermod_sanity_save", Description: "Roll a sanity save; a fumble triggers a panic check"}
}

// Handlers builds tool handlers over one backend.
type Handlers struct {
	Backend Backend
	Dice    dice.Roller
	Locale  string
}

// Classify handles cybermod_classify.
func (h Handlers) Classify() mcp.ToolHandlerFor[ItemInput, ClassifyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, ClassifyResult, error) {
		item, _, err := h.item(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, ClassifyResult{}, err
		}
		t, rule := domain.ClassifyWithRule(item)
		result := ClassifyResult{
			ItemID:      item.ID,
			Type:        t.String(),
			Installed:   domain.IsInstalled(item),
			Installable: domain.IsInstallable(item),
			Skillware:   domain.IsSkillware(item),
		}
		if t != domain.TypeNone {
			result.Rule = rule.String()
		}
		if result.Skillware {
			result.Rank = domain.SkillwareRank(item)
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// IsInstallable handles cybermod_is_installable.
func (h Handlers) IsInstallable() mcp.ToolHandlerFor[ItemInput, InstallableResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, InstallableResult, error) {
		item, _, err := h.item(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, InstallableResult{}, err
		}
		return &mcp.CallToolResult{}, InstallableResult{ItemID: item.ID, Installable: domain.IsInstallable(item)}, nil
	}
}

// Slots handles cybermod_slots.
func (h Handlers) Slots() mcp.ToolHandlerFor[ActorInput, SlotsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActorInput) (*mcp.CallToolResult, SlotsResult, error) {
		inspection, err := h.Backend.Inspect(ctx, input.ActorID)
		if err != nil {
			return nil, SlotsResult{}, h.toolError(err)
		}
		return &mcp.CallToolResult{}, slotsResult(inspection.Slots), nil
	}
}

// InstalledMods handles cybermod_installed_mods.
func (h Handlers) InstalledMods() mcp.ToolHandlerFor[ActorInput, InstalledModsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActorInput) (*mcp.CallToolResult, InstalledModsResult, error) {
		inspection, err := h.Backend.Inspect(ctx, input.ActorID)
		if err != nil {
			return nil, InstalledModsResult{}, h.toolError(err)
		}
		mods := inspection.Installed
		return &mcp.CallToolResult{}, InstalledModsResult{
			Cyberware:       summarize(mods.Cyberware),
			Slickware:       summarize(mods.Slickware),
			Slots:           slotsResult(inspection.Slots),
			OverclockLevel:  mods.OverclockLevel,
			IsOverclocked:   mods.IsOverclocked,
			OverclockEffect: inspection.OverclockEffect,
		}, nil
	}
}

// MissingPrerequisites handles cybermod_missing_prerequisites.
func (h Handlers) MissingPrerequisites() mcp.ToolHandlerFor[ItemInput, MissingPrerequisitesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, MissingPrerequisitesResult, error) {
		item, actor, err := h.item(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, MissingPrerequisitesResult{}, err
		}
		missing := domain.MissingPrerequisites(actor, item.Cyber.Requirements)
		if missing == nil {
			missing = []string{}
		}
		return &mcp.CallToolResult{}, MissingPrerequisitesResult{Requirements: item.Cyber.Requirements, Missing: missing}, nil
	}
}

// Validate handles cybermod_validate.
func (h Handlers) Validate() mcp.ToolHandlerFor[ValidateInput, ValidateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, ValidateResult, error) {
		requested, err := parseType(input.Type)
		if err != nil {
			return nil, ValidateResult{}, h.toolError(err)
		}
		item, actor, err := h.item(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, ValidateResult{}, err
		}
		v := domain.Validate(actor, item, requested)
		result := ValidateResult{Valid: v.Valid, Missing: v.Missing}
		if v.Valid {
			result.Type = v.Type.String()
		} else {
			result.Code = string(v.Reason.Code)
			result.Reason = apperrors.UserMessage(v.Reason, h.Locale)
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// ResolveOutcome handles cybermod_resolve_outcome.
func (h Handlers) ResolveOutcome() mcp.ToolHandlerFor[ResolveOutcomeInput, OutcomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveOutcomeInput) (*mcp.CallToolResult, OutcomeResult, error) {
		if input.Rolled < 0 || input.Rolled > 100 {
			return nil, OutcomeResult{}, h.toolError(apperrors.WithMetadata(apperrors.CodeInvalidArgument, "rolled must be between 0 and 100", map[string]string{"Rolled": fmt.Sprint(input.Rolled)}))
		}
		requested, err := parseType(input.Type)
		if err != nil {
			return nil, OutcomeResult{}, h.toolError(err)
		}
		item, actor, err := h.item(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, OutcomeResult{}, err
		}
		outcome, err := domain.ResolveOutcome(ctx, domain.OutcomeRequest{
			Actor:       actor,
			Item:        item,
			Type:        requested,
			StressBonus: input.StressBonus,
			Check:       domain.CheckFromRoll(input.Rolled, input.Target),
		}, h.Dice)
		if err != nil {
			return nil, OutcomeResult{}, h.toolError(err)
		}
		return &mcp.CallToolResult{}, outcomeResult(outcome), nil
	}
}

// OverclockEffect handles cybermod_overclock_effect.
func (h Handlers) OverclockEffect() mcp.ToolHandlerFor[OverclockEffectInput, OverclockEffectResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input OverclockEffectInput) (*mcp.CallToolResult, OverclockEffectResult, error) {
		locale := strings.TrimSpace(input.Locale)
		if locale == "" {
			locale = h.Locale
		}
		return &mcp.CallToolResult{}, OverclockEffectResult{
			Level:  input.Level,
			Effect: domain.LocalizedOverclockEffect(input.Level, locale),
		}, nil
	}
}

// ResolveSkillware handles cybermod_resolve_skillware.
func (h Handlers) ResolveSkillware() mcp.ToolHandlerFor[ResolveSkillwareInput, ResolveSkillwareResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveSkillwareInput) (*mcp.CallToolResult, ResolveSkillwareResult, error) {
		plan, err := h.Backend.ResolveSkillware(ctx, input.ActorID, input.ItemID, input.Skill)
		if err != nil {
			return nil, ResolveSkillwareResult{}, h.toolError(err)
		}
		return &mcp.CallToolResult{}, skillwareResult(plan), nil
	}
}

// Install handles cybermod_install.
func (h Handlers) Install() mcp.ToolHandlerFor[InstallInput, InstallResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InstallInput) (*mcp.CallToolResult, InstallResult, error) {
		requested, err := parseType(input.Type)
		if err != nil {
			return nil, InstallResult{}, h.toolError(err)
		}
		mode, ok := dice.ParseMode(input.Mode)
		if !ok {
			return nil, InstallResult{}, h.toolError(apperrors.WithMetadata(apperrors.CodeInvalidAnswer, "invalid mode", map[string]string{"Answer": input.Mode}))
		}
		res, err := h.Backend.Install(ctx, app.BeginRequest{ActorID: input.ActorID, ItemID: input.ItemID, Type: requested}, app.Answers{
			StressChoice: input.StressChoice,
			Skill:        input.Skill,
			Mode:         mode,
			Skillware:    input.Skillware,
		})
		if err != nil {
			return nil, InstallResult{}, h.toolError(err)
		}
		result := InstallResult{
			Target:          res.Target,
			Faces:           res.Faces,
			Rolled:          res.Check.Rolled,
			Outcome:         outcomeResult(res.Outcome),
			OverclockEffect: res.OverclockEffect,
		}
		if res.SkillChoice != nil && res.Skillware == nil {
			for _, option := range res.SkillChoice.Options {
				result.SkillChoices = append(result.SkillChoices, option.Value)
			}
		}
		if res.Skillware != nil {
			bound := skillwareResult(*res.Skillware)
			result.Skillware = &bound
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// Remove handles cybermod_remove.
func (h Handlers) Remove() mcp.ToolHandlerFor[ItemInput, RemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, RemoveResult, error) {
		if _, err := h.Backend.RemoveMod(ctx, input.ActorID, input.ItemID); err != nil {
			return nil, RemoveResult{}, h.toolError(err)
		}
		return &mcp.CallToolResult{}, RemoveResult{ItemID: input.ItemID, Removed: true}, nil
	}
}

// Overclock handles cybermod_overclock.
func (h Handlers) Overclock() mcp.ToolHandlerFor[ItemInput, OverclockResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ItemInput) (*mcp.CallToolResult, OverclockResult, error) {
		res, err := h.Backend.OverclockItem(ctx, input.ActorID, input.ItemID)
		if err != nil {
			return nil, OverclockResult{}, h.toolError(err)
		}
		return &mcp.CallToolResult{}, OverclockResult{Changed: res.Plan.Changed, Level: res.Level, Effect: res.Effect}, nil
	}
}

// SanitySave handles cybermod_sanity_save.
func (h Handlers) SanitySave() mcp.ToolHandlerFor[ActorInput, SanitySaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActorInput) (*mcp.CallToolResult, SanitySaveResult, error) {
		res, err := h.Backend.SanitySave(ctx, input.ActorID)
		if err != nil {
			return nil, SanitySaveResult{}, h.toolError(err)
		}
		out := res.Outcome
		return &mcp.CallToolResult{}, SanitySaveResult{
			Grade:  out.Grade.String(),
			Rolled: out.Check.Rolled,
			Target: out.Check.Target,
			Stress: out.ActorPatch.Stress,
		}, nil
	}
}

func (h Handlers) item(ctx context.Context, actorID, itemID string) (domain.Item, domain.Actor, error) {
	actor, err := h.Backend.Actor(ctx, actorID)
	if err != nil {
		return domain.Item{}, domain.Actor{}, h.toolError(err)
	}
	item, ok := actor.Item(itemID)
	if !ok {
		return domain.Item{}, domain.Actor{}, h.toolError(apperrors.WithMetadata(apperrors.CodeNotFound, "item not found", map[string]string{"Item": itemID, "Actor": actorID}))
	}
	return item, actor, nil
}

// toolError renders err in the server locale, keeping its code.
// toolError carries the domain error as a status with its localized message
// so clients can recover the code with apperrors.FromGRPCStatus.
func (h Handlers) toolError(err error) error {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Wrap(apperrors.CodeInternal, "internal error", err)
	}
	msg := apperrors.UserMessage(appErr, h.Locale)
	return fmt.Errorf("%s [%s]: %w", msg, appErr.Code, appErr.ToGRPCStatus(h.Locale, msg))
}

func parseType(value string) (domain.Type, error) {
	if strings.TrimSpace(value) == "" {
		return domain.TypeNone, nil
	}
	return domain.ParseType(value)
}

func slotsResult(s domain.Slots) SlotsResult {
	return SlotsResult{Cyberware: s.Cyberware, Slickware: s.Slickware, HasSlicksocket: s.HasSlicksocket}
}

func summarize(items []domain.Item) []ModSummary {
	out := make([]ModSummary, 0, len(items))
	for _, item := range items {
		out = append(out, ModSummary{
			ID:             item.ID,
			Name:           item.Name,
			Overclocked:    item.Cyber.Overclocked,
			Malfunctioning: item.Cyber.Malfunctioning,
		})
	}
	return out
}

func outcomeResult(o domain.Outcome) OutcomeResult {
	result := OutcomeResult{
		Grade:               o.Grade.String(),
		InstallationSuccess: o.InstallationSuccess,
		Malfunctioning:      o.Malfunctioning,
		SlotsUsed:           o.SlotsUsed,
		StressReduction:     o.StressReduction,
		StressGain:          o.StressGain,
		Damage:              o.Damage,
		SanityLoss:          o.SanityLoss,
		OverclockLevel:      o.OverclockLevel,
		IsOverclocked:       o.IsOverclocked,
	}
	for _, trigger := range o.Triggers {
		result.Triggers = append(result.Triggers, trigger.Table)
	}
	return result
}

func skillwareResult(plan domain.SkillwarePlan) ResolveSkillwareResult {
	result := ResolveSkillwareResult{
		Skill:          plan.Skill,
		Rank:           plan.Rank,
		RankName:       domain.RankName(plan.Rank),
		AlreadyPresent: plan.AlreadyPresent,
	}
	if plan.NewSkill != nil {
		result.NewSkillID = plan.NewSkill.ID
	}
	return result
}
