package table

// Descriptor keys read by Factory. Keys prefixed "cell." are cell properties
// and are listed in package cell.
const (
	KeyClass               = "class"
	KeyCellClass           = "cellClass"
	KeyIdentifier          = "id"
	KeyCellStyle           = "cellStyle"
	KeyCellReuseIdentifier = "cellReuseIdentifier"
	KeyCellReuse           = "cellReuse"
	KeyRepresentedObject   = "representedObject"
	KeyPrefKey             = "prefKey"
	KeyMinimumHeight       = "minimumHeight"

	KeySelectable         = "selectable"
	KeySelectAction       = "selectAction"
	KeySelectActionTarget = "selectActionTarget"
	KeySelectActionBlock  = "selectActionBlock"

	KeyEditable    = "editable"
	KeyDeleteBlock = "deleteBlock"

	KeyValueAction           = "valueAction"
	KeyValueActionTarget     = "valueActionTarget"
	KeyValueActionBlock      = "valueActionBlock"
	KeyReturnKeyAction       = "returnKeyAction"
	KeyReturnKeyActionTarget = "returnKeyActionTarget"
	KeyReturnKeyActionBlock  = "returnKeyActionBlock"

	KeyHeaderText = "headerText"
	KeyFooterText = "footerText"
	KeyItems      = "items"
)

// Target names understood in "*Target" keys besides registered targets.
const (
	TargetNameController = "controller"
	TargetNameResponder  = "responder"
	TargetNameSelf       = "self"
)

// ItemKeys lists the item descriptor keys that are not cell properties.
func ItemKeys() []string {
	return []string{
		KeyClass, KeyCellClass, KeyIdentifier, KeyCellStyle, KeyCellReuseIdentifier, KeyCellReuse,
		KeyRepresentedObject, KeyPrefKey, KeyMinimumHeight,
		KeySelectable, KeySelectAction, KeySelectActionTarget, KeySelectActionBlock,
		KeyEditable, KeyDeleteBlock,
		KeyValueAction, KeyValueActionTarget, KeyValueActionBlock,
		KeyReturnKeyAction, KeyReturnKeyActionTarget, KeyReturnKeyActionBlock,
	}
}

// SectionKeys lists the section descriptor keys.
func SectionKeys() []string {
	return []string{KeyClass, KeyIdentifier, KeyHeaderText, KeyFooterText, KeyItems}
}
