package draft

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventportal/internal/domain"
)

func pngFile(name string, marker byte) *domain.PendingFile {
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	data[len(data)-1] = marker
	return &domain.PendingFile{Name: name, Data: data}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		raw     string
		want    Slot
		wantErr bool
	}{
		{raw: "banner", want: BannerSlot()},
		{raw: "facilitators.0.photo", want: FacilitatorPhotoSlot(0)},
		{raw: "facilitators.12.photo", want: FacilitatorPhotoSlot(12)},
		{raw: "sponsors.3.logo", want: SponsorLogoSlot(3)},
		{raw: "sponsors.3.photo", wantErr: true},
		{raw: "facilitators.-1.photo", wantErr: true},
		{raw: "facilitators.x.photo", wantErr: true},
		{raw: "poster", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSlot(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotFieldPath(t *testing.T) {
	assert.Equal(t, "banner", BannerSlot().FieldPath())
	assert.Equal(t, "facilitators[2].photo", FacilitatorPhotoSlot(2).FieldPath())
	assert.Equal(t, "sponsors[0].logo", SponsorLogoSlot(0).FieldPath())
}

func TestAttachments_PreviewAppearsWhenDecodeFinishes(t *testing.T) {
	a := newAttachments()
	done := make(chan struct{}, 1)
	a.decoded = func() { done <- struct{}{} }

	require.NoError(t, a.attach(BannerSlot(), pngFile("banner.png", 1)))
	<-done

	_, preview := a.get(BannerSlot())
	require.NotEmpty(t, preview)
	assert.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(preview, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngFile("banner.png", 1).Data, raw)
}

// Replacing a slot's file while the first decode is still running must end
// with the second file's preview, regardless of decode completion order.
func TestAttachments_LastWriteWins(t *testing.T) {
	a := newAttachments()

	realDecode := a.decode
	block := make(chan struct{})
	a.decode = func(contentType string, data []byte) string {
		if data[len(data)-1] == 1 { // stall only first.png's decode
			<-block
		}
		return realDecode(contentType, data)
	}
	done := make(chan struct{}, 2)
	a.decoded = func() { done <- struct{}{} }

	require.NoError(t, a.attach(BannerSlot(), pngFile("first.png", 1)))
	require.NoError(t, a.attach(BannerSlot(), pngFile("second.png", 2)))
	<-done // second decode finishes first

	file, preview := a.get(BannerSlot())
	assert.Equal(t, "second.png", file.Name)
	want := preview

	close(block) // let the stale decode finish and try to publish
	<-done

	_, preview = a.get(BannerSlot())
	assert.Equal(t, want, preview, "stale decode overwrote a newer preview")
}

// A decode still in flight when the slot is cleared must not resurrect the
// preview.
func TestAttachments_ClearInvalidatesInFlightDecode(t *testing.T) {
	a := newAttachments()

	realDecode := a.decode
	block := make(chan struct{})
	a.decode = func(contentType string, data []byte) string {
		<-block
		return realDecode(contentType, data)
	}
	done := make(chan struct{}, 1)
	a.decoded = func() { done <- struct{}{} }

	require.NoError(t, a.attach(BannerSlot(), pngFile("banner.png", 1)))
	a.clear(BannerSlot())
	close(block)
	<-done

	file, preview := a.get(BannerSlot())
	assert.Nil(t, file)
	assert.Empty(t, preview)
}

func TestAttachments_RejectsBadFiles(t *testing.T) {
	a := newAttachments()

	err := a.attach(BannerSlot(), &domain.PendingFile{Name: "big.png", Data: make([]byte, MaxAttachmentBytes+1)})
	var slotErr *SlotError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "Image must be 5MB or less", slotErr.Message)
	assert.Equal(t, "banner", slotErr.Slot.FieldPath())

	err = a.attach(SponsorLogoSlot(0), &domain.PendingFile{Name: "doc.txt", Data: []byte("just some text content")})
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "Only PNG, JPEG, or WEBP images are allowed", slotErr.Message)

	// Nothing was stored.
	file, _ := a.get(BannerSlot())
	assert.Nil(t, file)
}

// The advertised content type is ignored; the stored type comes from the
// bytes themselves.
func TestAttachments_SniffsContentType(t *testing.T) {
	a := newAttachments()
	done := make(chan struct{}, 1)
	a.decoded = func() { done <- struct{}{} }

	f := pngFile("banner.gif", 1)
	f.ContentType = "image/gif"
	require.NoError(t, a.attach(BannerSlot(), f))
	<-done

	stored, preview := a.get(BannerSlot())
	assert.Equal(t, "image/png", stored.ContentType)
	assert.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))
}

func TestAttachments_ShiftAfterRemoval(t *testing.T) {
	a := newAttachments()
	require.NoError(t, a.attach(SponsorLogoSlot(0), pngFile("zero.png", 0)))
	require.NoError(t, a.attach(SponsorLogoSlot(2), pngFile("two.png", 2)))
	require.NoError(t, a.attach(BannerSlot(), pngFile("banner.png", 9)))

	a.shiftAfterRemoval(SlotSponsorLogo, 0)

	// zero.png went with its row; two.png moved from index 2 to 1.
	file, _ := a.get(SponsorLogoSlot(0))
	assert.Nil(t, file)
	file, _ = a.get(SponsorLogoSlot(1))
	require.NotNil(t, file)
	assert.Equal(t, "two.png", file.Name)
	file, _ = a.get(SponsorLogoSlot(2))
	assert.Nil(t, file)
	file, _ = a.get(BannerSlot())
	require.NotNil(t, file)
	assert.Equal(t, "banner.png", file.Name)
}
