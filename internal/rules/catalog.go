package rules

import (
	"fmt"
	"sync"

	"github.com/mj1618/a11y-check/internal/a11y"
	"github.com/mj1618/a11y-check/internal/condition"
)

// Named building blocks shared by the catalog.
var (
	Edit        = condition.ControlTypeIs(a11y.ControlTypeEdit).Named("Edit")
	Button      = condition.ControlTypeIs(a11y.ControlTypeButton).Named("Button")
	ListItem    = condition.ControlTypeIs(a11y.ControlTypeListItem).Named("ListItem")
	RadioButton = condition.ControlTypeIs(a11y.ControlTypeRadioButton).Named("RadioButton")

	ListContainer = condition.ControlTypeIs(
		a11y.ControlTypeList,
		a11y.ControlTypeComboBox,
		a11y.ControlTypeDataGrid,
	).Named("ListContainer")

	Interactive = condition.ControlTypeIs(
		a11y.ControlTypeButton,
		a11y.ControlTypeCheckBox,
		a11y.ControlTypeComboBox,
		a11y.ControlTypeEdit,
		a11y.ControlTypeHyperlink,
		a11y.ControlTypeRadioButton,
		a11y.ControlTypeSlider,
		a11y.ControlTypeSplitButton,
	).Named("Interactive")

	IsContentElement = condition.Property(a11y.PropertyIsContentElement, condition.IsTrue()).Named("IsContentElement")
	IsFocusable      = condition.Property(a11y.PropertyIsKeyboardFocusable, condition.IsTrue()).Named("IsKeyboardFocusable")
	IsOffscreen      = condition.Property(a11y.PropertyIsOffscreen, condition.IsTrue()).Named("IsOffscreen")
	IsDisabled       = condition.Property(a11y.PropertyIsEnabled, condition.Equals(false)).Named("IsDisabled")

	// ContentView is a document exposed in the content view of the tree.
	ContentView = condition.And(IsContentElement, condition.ControlTypeIs(a11y.ControlTypeDocument)).Named("ContentView")

	// EditStructure is the structure expected beneath an editable content view.
	EditStructure = condition.Child(Edit).Named("ContentView.EditStructure")
)

// LegacyStateUnavailable is the MSAA STATE_SYSTEM_UNAVAILABLE bit.
const LegacyStateUnavailable = 0x1

// Heading level property values: 80050 is "none", 80051..80059 are levels 1..9.
const (
	HeadingLevelNone = 80050
	HeadingLevelMax  = 80059
)

const structureDescription = "The element should match the structure %s."

func catalog() []*Rule {
	return []*Rule{
		MustNew(Info{
			ID:          ContentViewEditStructure,
			Description: structureDescription,
			HowToFix:    "Give the content view the structure %s, or expose the editable region as a direct child.",
			Standard:    InfoAndRelationships,
		}, EditStructure, AppliesTo(ContentView), OnMismatch(Note)),

		MustNew(Info{
			ID:          NameNotEmpty,
			Description: "Keyboard focusable elements must have a name: %s.",
			HowToFix:    "Set a non-empty accessible name so that %s holds.",
			Standard:    NameRoleValue,
		}, condition.Property(a11y.PropertyName, condition.NonEmpty()), AppliesTo(IsFocusable)),

		MustNew(Info{
			ID:          NameExcludesControlType,
			Description: "The name must not repeat the control type: %s.",
			HowToFix:    "Remove the control type from the name; assistive technology announces it separately.",
			Standard:    NameRoleValue,
		}, condition.True().Named("Name excludes control type"),
			AppliesTo(condition.Property(a11y.PropertyName, condition.NonEmpty())),
			WithEvaluator(nameExcludesControlType)),

		MustNew(Info{
			ID:          ButtonNoInteractiveDescendant,
			Description: "Buttons must not contain interactive elements: %s.",
			HowToFix:    "Move interactive content out of the button so that %s holds.",
			Standard:    InfoAndRelationships,
		}, condition.Not(condition.Descendant(Interactive)), AppliesTo(Button)),

		MustNew(Info{
			ID:          ListItemInContainer,
			Description: "List items must be contained by a list: %s.",
			HowToFix:    "Place the list item inside a list, combo box or data grid.",
			Standard:    InfoAndRelationships,
		}, condition.Ancestor(ListContainer), AppliesTo(ListItem)),

		MustNew(Info{
			ID:          RadioButtonGrouped,
			Description: "Radio buttons are expected in groups: %s.",
			HowToFix:    "Check whether a single radio button should be a check box.",
			Standard:    InfoAndRelationships,
		}, condition.Sibling(RadioButton), AppliesTo(RadioButton), OnMismatch(Note)),

		MustNew(Info{
			ID:          HeadingLevelValid,
			Description: "Heading level must be a defined value: %s.",
			HowToFix:    "Set HeadingLevel to none or a level between 1 and 9.",
			Standard:    HeadingsAndLabels,
		}, condition.Property(a11y.PropertyHeadingLevel, condition.InRange(HeadingLevelNone, HeadingLevelMax)),
			AppliesTo(condition.Property(a11y.PropertyHeadingLevel, condition.Exists()))),

		MustNew(Info{
			ID:          DisabledStateConsistent,
			Description: "Disabled elements must report the unavailable legacy state: %s.",
			HowToFix:    "Set STATE_SYSTEM_UNAVAILABLE in the legacy state of disabled elements.",
			Standard:    NameRoleValue,
		}, condition.Property(a11y.PropertyLegacyIAccessibleState, condition.HasFlags(LegacyStateUnavailable)),
			AppliesTo(condition.And(IsDisabled, condition.Property(a11y.PropertyLegacyIAccessibleState, condition.Exists())))),

		MustNew(Info{
			ID:          FocusableHasBounds,
			Description: "On-screen focusable elements must have a bounding rectangle: %s.",
			HowToFix:    "Report a bounding rectangle so that the focus indicator can be located.",
			Standard:    FocusVisible,
		}, condition.Property(a11y.PropertyBoundingRectangle, condition.Exists()),
			AppliesTo(condition.And(IsFocusable, condition.Not(IsOffscreen)))),
	}
}

// nameExcludesControlType fails elements whose name contains their own
// localized control type, e.g. a button named "OK button".
func nameExcludesControlType(e a11y.Element, _ condition.Condition) (EvaluationCode, error) {
	label, err := localizedControlType(e)
	if err != nil {
		return 0, err
	}
	if label == "" {
		return Open, nil
	}
	ok, err := condition.Not(condition.Property(a11y.PropertyName, condition.Contains(label))).Matches(e)
	if err != nil {
		return 0, err
	}
	if ok {
		return Pass, nil
	}
	return Fail, nil
}

func localizedControlType(e a11y.Element) (string, error) {
	v, ok, err := e.Property(a11y.PropertyLocalizedControlType)
	if err != nil {
		return "", fmt.Errorf("read property %s: %w", a11y.PropertyLocalizedControlType, err)
	}
	if s, isString := v.(string); ok && isString && s != "" {
		return s, nil
	}
	ct, err := e.ControlType()
	if err != nil {
		return "", fmt.Errorf("read control type: %w", err)
	}
	if !ct.Known() {
		return "", nil
	}
	return ct.String(), nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(catalog()...)
})

// Default returns the built-in rule registry in catalog order.
func Default() *Registry {
	return defaultRegistry()
}
