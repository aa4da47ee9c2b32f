package cell

// Cell property keys. Values are read from an item's property snapshot and
// written onto the cell in schema order.
const (
	KeyIndentationLevel        = "cell.indentationLevel"
	KeyIndentationWidth        = "cell.indentationWidth"
	KeyAccessoryType           = "cell.accessoryType"
	KeyAccessoryView           = "cell.accessoryView"
	KeyBackgroundColor         = "cell.backgroundColor"
	KeySelectedBackgroundColor = "cell.selectedBackgroundColor"

	KeyImage                = "cell.imageView.image"
	KeyImageName            = "cell.imageView.imageName"
	KeyHighlightedImage     = "cell.imageView.highlightedImage"
	KeyHighlightedImageName = "cell.imageView.highlightedImageName"

	KeyText                 = "cell.textLabel.text"
	KeyTextAlignment        = "cell.textLabel.textAlignment"
	KeyTextColor            = "cell.textLabel.textColor"
	KeyHighlightedTextColor = "cell.textLabel.highlightedTextColor"
	KeyFont                 = "cell.textLabel.font"

	KeyDetailText                 = "cell.detailTextLabel.text"
	KeyDetailTextColor            = "cell.detailTextLabel.textColor"
	KeyDetailHighlightedTextColor = "cell.detailTextLabel.highlightedTextColor"
	KeyDetailFont                 = "cell.detailTextLabel.font"
)

// Slider cell keys.
const (
	KeySliderMinimumValue          = "cell.slider.minimumValue"
	KeySliderMaximumValue          = "cell.slider.maximumValue"
	KeySliderValue                 = "cell.slider.value"
	KeySliderMinimumValueImage     = "cell.slider.minimumValueImage"
	KeySliderMinimumValueImageName = "cell.slider.minimumValueImageName"
	KeySliderMaximumValueImage     = "cell.slider.maximumValueImage"
	KeySliderMaximumValueImageName = "cell.slider.maximumValueImageName"
	KeySliderContinuous            = "cell.slider.continuous"
	KeySliderMinimumTrackTintColor = "cell.slider.minimumTrackTintColor"
	KeySliderMaximumTrackTintColor = "cell.slider.maximumTrackTintColor"
	KeySliderThumbTintColor        = "cell.slider.thumbTintColor"
	KeySliderLabelText             = "cell.slider.label.text"
)

// Switch cell keys.
const (
	KeySwitchOn             = "cell.switch.on"
	KeySwitchOnTintColor    = "cell.switch.onTintColor"
	KeySwitchThumbTintColor = "cell.switch.thumbTintColor"
)

// Text field and text view keys.
const (
	KeyInputText                   = "cell.textInput.text"
	KeyInputPlaceholder            = "cell.textInput.placeholder"
	KeyInputPlaceholderColor       = "cell.textInput.placeholderColor"
	KeyInputClearButtonMode        = "cell.textInput.clearButtonMode"
	KeyInputReturnKeyType          = "cell.textInput.returnKeyType"
	KeyInputKeyboardType           = "cell.textInput.keyboardType"
	KeyInputSecureTextEntry        = "cell.textInput.secureTextEntry"
	KeyInputAutocapitalizationType = "cell.textInput.autocapitalizationType"
	KeyInputAutocorrectionType     = "cell.textInput.autocorrectionType"
	KeyInputEnabled                = "cell.textInput.enabled"
	KeyInputMinHeightInLines       = "cell.textInput.minHeightInLines"
	KeyInputMaxHeightInLines       = "cell.textInput.maxHeightInLines"
)
