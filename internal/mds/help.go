package mds

import "strings"

// fieldHelp maps item codes to RAI manual coding guidance. The catalog
// is deliberately sparse; FieldHelp falls back to a generic pointer.
var fieldHelp = map[string]string{
	"a0310":  "Code the reason this assessment is being completed. 01 admission, 02 quarterly, 03 annual, 04 significant change, 05 significant correction, 06 discharge, 99 other.",
	"a0900":  "Record the resident's date of birth as documented in the medical record.",
	"a1600":  "Record the date the resident entered the facility for this stay. The entry date may not be after the assessment date.",
	"b0100":  "Code 1 only if the resident is in a persistent vegetative state or no discernible consciousness. If coded 1, skip to G0110 and dash the remaining section B items.",
	"b0200":  "Code the resident's hearing ability with hearing aid if used. 0 adequate, 1 minimal difficulty, 2 moderate difficulty, 3 highly impaired.",
	"b0600":  "Code speech clarity during the look-back period. 0 clear speech, 1 unclear speech, 2 no speech.",
	"b0700":  "Code ability to make self understood through any means. 0 understood, 1 usually, 2 sometimes, 3 rarely or never understood.",
	"b0800":  "Code ability to understand verbal content. 0 understands, 1 usually, 2 sometimes, 3 rarely or never understands.",
	"b1000":  "Code vision with corrective lenses if used. 0 adequate, 1 impaired, 2 moderately impaired, 3 highly impaired, 4 severely impaired.",
	"c0100":  "Attempt the Brief Interview for Mental Status with every resident able to communicate. Code 0 only when the resident is rarely or never understood; then skip to C0700.",
	"c0200":  "Score the repetition of three words on the first attempt: one point per word, maximum 3.",
	"c0500":  "Enter the sum of C0200 through C0400. Scores 13-15 indicate intact cognition, 8-12 moderate impairment, 0-7 severe impairment.",
	"c1310a": "Code 1 if there is an acute change in mental status from the resident's baseline, based on staff and family report.",
	"d0100":  "Attempt the resident mood interview (PHQ-9) unless the resident is rarely or never understood; then skip to the staff assessment.",
	"d0300":  "Enter the sum of D0200A through D0200I. A total of 10 or greater suggests a need for further mood evaluation.",
	"g0110a": "Code self-performance for moving to and from a lying position in bed. 0 independent through 4 total dependence; 7 activity occurred only once or twice; 8 activity did not occur.",
	"g0110h": "Code self-performance for eating, including intake by tube or parenteral nutrition.",
	"h0300":  "Code urinary continence over the look-back period. 0 always continent, 1 occasionally incontinent, 2 frequently incontinent, 3 always incontinent.",
}

const genericHelp = "Refer to the RAI manual chapter for this item's coding instructions."

// FieldHelp returns coding guidance for an item, or a generic pointer to
// the RAI manual when no specific entry exists.
func FieldHelp(field string) string {
	if help, ok := fieldHelp[strings.ToLower(field)]; ok {
		return help
	}
	return genericHelp
}
