package generate

import (
	"fmt"

	"github.com/mithrel/viralscript/pkg/api"
)

const scriptsPrompt = `
Anda adalah seorang Expert Digital Marketer dan Copywriter Affiliate terbaik di Indonesia.
Tugas Anda: Buatlah %[1]d variasi skrip video pendek (Reels/TikTok/Shorts) berdasarkan informasi produk dari link berikut: %[2]s.

Kriteria Skrip:
- Gaya Bahasa: %[3]s
- Estimasi Durasi: %[4]s
- Jenis Hook: %[5]s

PENTING: Gunakan format penulisan MARKDOWN yang sangat rapi untuk bagian 'content':
### 🪝 HOOK
(Kalimat pembuka yang provokatif/menarik)

> 👁️ **VISUAL**: (Instruksi visual/action di kamera)

### 💬 DIALOG / SCRIPT
**Dialog**: "(Kata-kata yang diucapkan secara jelas)"

### 🎯 CTA (Call to Action)
(Instruksi klik keranjang/link bio)

Aturan:
- Gunakan baris kosong antar bagian.
- Gunakan emoji yang relevan.
- Pastikan pesan sangat mudah dipahami oleh kreator konten pemula sekalipun.

Format Output:
Berikan hasil dalam bentuk JSON array yang berisi tepat %[1]d objek.
Setiap objek memiliki properti: 'id', 'title', 'content' (berisi markdown di atas), 'hashtags' (array 5 string).
`

const bundlePrompt = `
Anda adalah expert social media manager. Berdasarkan skrip video ini:
"%s"

Buatlah paket konten sosial media lengkap yang mencakup:
1. **Skrip Voice-over Iklan**: Versi skrip video pendek yang sudah dipoles sempurna untuk voice-over konten promosi.
2. **Instagram Feed**: 1 post single image yang terdiri dari:
   - 'title': Judul HOOK yang sangat kuat, kekinian, dan powerful (Gunakan teknik copywriting kelas atas seperti curiosity gap atau benefit-driven).
   - 'visual': Deskripsi visual detail untuk desainer grafis.
   - 'caption': Detail Caption yang sangat rapi menggunakan format markdown, sertakan emoji, CTA, dan Hashtags.
3. **Instagram Carousel**: Outline slide demi slide (Minimal 5 slide).
4. **Threads Thread**: Utas berisi 3-5 post yang saling terhubung dan sangat conversational.

Gunakan format JSON yang sesuai dengan schema. Gunakan emoji yang menarik dan bahasa yang sesuai dengan skrip aslinya.
`

// ScriptsPrompt renders the instruction for a batch of script variations.
func ScriptsPrompt(form api.ScriptFormValues) string {
	return fmt.Sprintf(scriptsPrompt, form.ScriptCount, form.ProductURL, form.Style, form.Length, form.Hook)
}

// BundlePrompt embeds the script content exactly as given.
func BundlePrompt(script api.GeneratedScript) string {
	return fmt.Sprintf(bundlePrompt, script.Content)
}
