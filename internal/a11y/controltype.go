package a11y

import (
	"fmt"
	"strings"
)

// ControlType identifies the kind of control an element represents.
// The numbering follows the UI Automation control type ids.
type ControlType int

const (
	ControlTypeButton       ControlType = 50000
	ControlTypeCalendar     ControlType = 50001
	ControlTypeCheckBox     ControlType = 50002
	ControlTypeComboBox     ControlType = 50003
	ControlTypeEdit         ControlType = 50004
	ControlTypeHyperlink    ControlType = 50005
	ControlTypeImage        ControlType = 50006
	ControlTypeListItem     ControlType = 50007
	ControlTypeList         ControlType = 50008
	ControlTypeMenu         ControlType = 50009
	ControlTypeMenuBar      ControlType = 50010
	ControlTypeMenuItem     ControlType = 50011
	ControlTypeProgressBar  ControlType = 50012
	ControlTypeRadioButton  ControlType = 50013
	ControlTypeScrollBar    ControlType = 50014
	ControlTypeSlider       ControlType = 50015
	ControlTypeSpinner      ControlType = 50016
	ControlTypeStatusBar    ControlType = 50017
	ControlTypeTab          ControlType = 50018
	ControlTypeTabItem      ControlType = 50019
	ControlTypeText         ControlType = 50020
	ControlTypeToolBar      ControlType = 50021
	ControlTypeToolTip      ControlType = 50022
	ControlTypeTree         ControlType = 50023
	ControlTypeTreeItem     ControlType = 50024
	ControlTypeCustom       ControlType = 50025
	ControlTypeGroup        ControlType = 50026
	ControlTypeThumb        ControlType = 50027
	ControlTypeDataGrid     ControlType = 50028
	ControlTypeDataItem     ControlType = 50029
	ControlTypeDocument     ControlType = 50030
	ControlTypeSplitButton  ControlType = 50031
	ControlTypeWindow       ControlType = 50032
	ControlTypePane         ControlType = 50033
	ControlTypeHeader       ControlType = 50034
	ControlTypeHeaderItem   ControlType = 50035
	ControlTypeTable        ControlType = 50036
	ControlTypeTitleBar     ControlType = 50037
	ControlTypeSeparator    ControlType = 50038
	ControlTypeSemanticZoom ControlType = 50039
	ControlTypeAppBar       ControlType = 50040
)

var controlTypeNames = map[ControlType]string{
	ControlTypeButton:       "Button",
	ControlTypeCalendar:     "Calendar",
	ControlTypeCheckBox:     "CheckBox",
	ControlTypeComboBox:     "ComboBox",
	ControlTypeEdit:         "Edit",
	ControlTypeHyperlink:    "Hyperlink",
	ControlTypeImage:        "Image",
	ControlTypeListItem:     "ListItem",
	ControlTypeList:         "List",
	ControlTypeMenu:         "Menu",
	ControlTypeMenuBar:      "MenuBar",
	ControlTypeMenuItem:     "MenuItem",
	ControlTypeProgressBar:  "ProgressBar",
	ControlTypeRadioButton:  "RadioButton",
	ControlTypeScrollBar:    "ScrollBar",
	ControlTypeSlider:       "Slider",
	ControlTypeSpinner:      "Spinner",
	ControlTypeStatusBar:    "StatusBar",
	ControlTypeTab:          "Tab",
	ControlTypeTabItem:      "TabItem",
	ControlTypeText:         "Text",
	ControlTypeToolBar:      "ToolBar",
	ControlTypeToolTip:      "ToolTip",
	ControlTypeTree:         "Tree",
	ControlTypeTreeItem:     "TreeItem",
	ControlTypeCustom:       "Custom",
	ControlTypeGroup:        "Group",
	ControlTypeThumb:        "Thumb",
	ControlTypeDataGrid:     "DataGrid",
	ControlTypeDataItem:     "DataItem",
	ControlTypeDocument:     "Document",
	ControlTypeSplitButton:  "SplitButton",
	ControlTypeWindow:       "Window",
	ControlTypePane:         "Pane",
	ControlTypeHeader:       "Header",
	ControlTypeHeaderItem:   "HeaderItem",
	ControlTypeTable:        "Table",
	ControlTypeTitleBar:     "TitleBar",
	ControlTypeSeparator:    "Separator",
	ControlTypeSemanticZoom: "SemanticZoom",
	ControlTypeAppBar:       "AppBar",
}

var controlTypesByName = func() map[string]ControlType {
	m := make(map[string]ControlType, len(controlTypeNames))
	for ct, name := range controlTypeNames {
		m[strings.ToLower(name)] = ct
	}
	return m
}()

// String returns the catalog name, or the numeric id for unknown types.
func (c ControlType) String() string {
	if name, ok := controlTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ControlType(%d)", int(c))
}

// Known reports whether c is part of the catalog.
func (c ControlType) Known() bool {
	_, ok := controlTypeNames[c]
	return ok
}

// ParseControlType resolves a control type by catalog name (case-insensitive).
func ParseControlType(name string) (ControlType, error) {
	if ct, ok := controlTypesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ct, nil
	}
	return 0, fmt.Errorf("unknown control type: %q", name)
}
