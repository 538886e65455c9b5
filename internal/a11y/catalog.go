package a11y

import (
	"fmt"
	"strings"
)

// PropertyID identifies an element property.
type PropertyID int

// EventID identifies an accessibility event a recorder can listen to.
type EventID int

// CatalogEntry pairs a numeric identifier with its catalog name.
type CatalogEntry struct {
	ID   int
	Name string
}

const (
	PropertyRuntimeID               PropertyID = 30000
	PropertyBoundingRectangle       PropertyID = 30001
	PropertyProcessID               PropertyID = 30002
	PropertyLocalizedControlType    PropertyID = 30004
	PropertyName                    PropertyID = 30005
	PropertyAcceleratorKey          PropertyID = 30006
	PropertyAccessKey               PropertyID = 30007
	PropertyHasKeyboardFocus        PropertyID = 30008
	PropertyIsKeyboardFocusable     PropertyID = 30009
	PropertyIsEnabled               PropertyID = 30010
	PropertyAutomationID            PropertyID = 30011
	PropertyClassName               PropertyID = 30012
	PropertyHelpText                PropertyID = 30013
	PropertyIsControlElement        PropertyID = 30016
	PropertyIsContentElement        PropertyID = 30017
	PropertyLabeledBy               PropertyID = 30018
	PropertyIsPassword              PropertyID = 30019
	PropertyIsOffscreen             PropertyID = 30022
	PropertyOrientation             PropertyID = 30023
	PropertyFrameworkID             PropertyID = 30024
	PropertyIsRequiredForForm       PropertyID = 30025
	PropertyItemStatus              PropertyID = 30026
	PropertyValueValue              PropertyID = 30045
	PropertyValueIsReadOnly         PropertyID = 30046
	PropertyRangeValueValue         PropertyID = 30047
	PropertySelectionItemIsSelected PropertyID = 30079
	PropertyToggleState             PropertyID = 30086
	PropertyLegacyIAccessibleState  PropertyID = 30100
	PropertyLandmarkType            PropertyID = 30157
	PropertyHeadingLevel            PropertyID = 30173
)

// propertyCatalog is ordered by id; recorder defaults follow this order.
var propertyCatalog = []CatalogEntry{
	{int(PropertyRuntimeID), "RuntimeId"},
	{int(PropertyBoundingRectangle), "BoundingRectangle"},
	{int(PropertyProcessID), "ProcessId"},
	{int(PropertyLocalizedControlType), "LocalizedControlType"},
	{int(PropertyName), "Name"},
	{int(PropertyAcceleratorKey), "AcceleratorKey"},
	{int(PropertyAccessKey), "AccessKey"},
	{int(PropertyHasKeyboardFocus), "HasKeyboardFocus"},
	{int(PropertyIsKeyboardFocusable), "IsKeyboardFocusable"},
	{int(PropertyIsEnabled), "IsEnabled"},
	{int(PropertyAutomationID), "AutomationId"},
	{int(PropertyClassName), "ClassName"},
	{int(PropertyHelpText), "HelpText"},
	{int(PropertyIsControlElement), "IsControlElement"},
	{int(PropertyIsContentElement), "IsContentElement"},
	{int(PropertyLabeledBy), "LabeledBy"},
	{int(PropertyIsPassword), "IsPassword"},
	{int(PropertyIsOffscreen), "IsOffscreen"},
	{int(PropertyOrientation), "Orientation"},
	{int(PropertyFrameworkID), "FrameworkId"},
	{int(PropertyIsRequiredForForm), "IsRequiredForForm"},
	{int(PropertyItemStatus), "ItemStatus"},
	{int(PropertyValueValue), "Value"},
	{int(PropertyValueIsReadOnly), "IsReadOnly"},
	{int(PropertyRangeValueValue), "RangeValue"},
	{int(PropertySelectionItemIsSelected), "IsSelected"},
	{int(PropertyToggleState), "ToggleState"},
	{int(PropertyLegacyIAccessibleState), "LegacyState"},
	{int(PropertyLandmarkType), "LandmarkType"},
	{int(PropertyHeadingLevel), "HeadingLevel"},
}

const (
	EventToolTipOpened                  EventID = 20000
	EventToolTipClosed                  EventID = 20001
	EventStructureChanged               EventID = 20002
	EventMenuOpened                     EventID = 20003
	EventPropertyChanged                EventID = 20004
	EventFocusChanged                   EventID = 20005
	EventAsyncContentLoaded             EventID = 20006
	EventMenuClosed                     EventID = 20007
	EventLayoutInvalidated              EventID = 20008
	EventInvoked                        EventID = 20009
	EventElementAddedToSelection        EventID = 20010
	EventElementRemovedFromSelection    EventID = 20011
	EventElementSelected                EventID = 20012
	EventSelectionInvalidated           EventID = 20013
	EventTextSelectionChanged           EventID = 20014
	EventTextChanged                    EventID = 20015
	EventWindowOpened                   EventID = 20016
	EventWindowClosed                   EventID = 20017
	EventMenuModeStart                  EventID = 20018
	EventMenuModeEnd                    EventID = 20019
	EventInputReachedTarget             EventID = 20020
	EventInputReachedOtherElement       EventID = 20021
	EventInputDiscarded                 EventID = 20022
	EventSystemAlert                    EventID = 20023
	EventLiveRegionChanged              EventID = 20024
	EventHostedFragmentRootsInvalidated EventID = 20025
	EventDragStart                      EventID = 20026
	EventDragCancel                     EventID = 20027
	EventDragComplete                   EventID = 20028
	EventDragEnter                      EventID = 20029
	EventDragLeave                      EventID = 20030
	EventDropped                        EventID = 20031
	EventTextEditTextChanged            EventID = 20032
	EventConversionTargetChanged        EventID = 20033
	EventChanges                        EventID = 20034
	EventNotification                   EventID = 20035
	EventActiveTextPositionChanged      EventID = 20036
)

var eventCatalog = []CatalogEntry{
	{int(EventToolTipOpened), "ToolTipOpened"},
	{int(EventToolTipClosed), "ToolTipClosed"},
	{int(EventStructureChanged), "StructureChanged"},
	{int(EventMenuOpened), "MenuOpened"},
	{int(EventPropertyChanged), "AutomationPropertyChanged"},
	{int(EventFocusChanged), "AutomationFocusChanged"},
	{int(EventAsyncContentLoaded), "AsyncContentLoaded"},
	{int(EventMenuClosed), "MenuClosed"},
	{int(EventLayoutInvalidated), "LayoutInvalidated"},
	{int(EventInvoked), "Invoke_Invoked"},
	{int(EventElementAddedToSelection), "SelectionItem_ElementAddedToSelection"},
	{int(EventElementRemovedFromSelection), "SelectionItem_ElementRemovedFromSelection"},
	{int(EventElementSelected), "SelectionItem_ElementSelected"},
	{int(EventSelectionInvalidated), "Selection_Invalidated"},
	{int(EventTextSelectionChanged), "Text_TextSelectionChanged"},
	{int(EventTextChanged), "Text_TextChanged"},
	{int(EventWindowOpened), "Window_WindowOpened"},
	{int(EventWindowClosed), "Window_WindowClosed"},
	{int(EventMenuModeStart), "MenuModeStart"},
	{int(EventMenuModeEnd), "MenuModeEnd"},
	{int(EventInputReachedTarget), "InputReachedTarget"},
	{int(EventInputReachedOtherElement), "InputReachedOtherElement"},
	{int(EventInputDiscarded), "InputDiscarded"},
	{int(EventSystemAlert), "SystemAlert"},
	{int(EventLiveRegionChanged), "LiveRegionChanged"},
	{int(EventHostedFragmentRootsInvalidated), "HostedFragmentRootsInvalidated"},
	{int(EventDragStart), "Drag_DragStart"},
	{int(EventDragCancel), "Drag_DragCancel"},
	{int(EventDragComplete), "Drag_DragComplete"},
	{int(EventDragEnter), "DropTarget_DragEnter"},
	{int(EventDragLeave), "DropTarget_DragLeave"},
	{int(EventDropped), "DropTarget_Dropped"},
	{int(EventTextEditTextChanged), "TextEdit_TextChanged"},
	{int(EventConversionTargetChanged), "TextEdit_ConversionTargetChanged"},
	{int(EventChanges), "Changes"},
	{int(EventNotification), "Notification"},
	{int(EventActiveTextPositionChanged), "ActiveTextPositionChanged"},
}

// Properties returns the known property catalog in id order.
func Properties() []CatalogEntry {
	return append([]CatalogEntry(nil), propertyCatalog...)
}

// Events returns the known event catalog in id order.
func Events() []CatalogEntry {
	return append([]CatalogEntry(nil), eventCatalog...)
}

func (p PropertyID) String() string {
	for _, e := range propertyCatalog {
		if e.ID == int(p) {
			return e.Name
		}
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

func (e EventID) String() string {
	for _, c := range eventCatalog {
		if c.ID == int(e) {
			return c.Name
		}
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ParsePropertyID resolves a property by catalog name (case-insensitive).
func ParsePropertyID(name string) (PropertyID, error) {
	n := strings.TrimSpace(name)
	for _, e := range propertyCatalog {
		if strings.EqualFold(e.Name, n) {
			return PropertyID(e.ID), nil
		}
	}
	return 0, fmt.Errorf("unknown property: %q", name)
}
