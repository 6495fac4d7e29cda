package tenderportal

// Page fixtures mirroring the markup the portal actually serves, trimmed to
// the elements the extractors consume.

const companyIndexFixture = `<html><body>
<table>
<tr>
<td colspan="2" style="height:10px"></td>
<td></td>
<td style="width:120px">
	<a href="/acme"><img src="/Image/42" /></a>
	<span class="caption">Acme Oy</span>
</td>
<td style="width:120px">
	<a href="https://portal.example.com/helsinki"><img src="/Image/13" /></a>
	<span class="caption">Helsingin kaupunki</span>
</td>
</tr>
</table>
</body></html>`

const noticesPageFixture = `<html><head><script>
var portalConfig = { culture: "fi-FI", version: 3 };
</script></head><body>
<table id="dpsGrid">
<tr><th>Yksikkö</th><th>Tunnus</th><th>Otsikko</th><th>Kuvaus</th><th>Määräaika</th></tr>
<tr>
	<td>Hankintayksikkö</td>
	<td>DPS-7</td>
	<td><a href="/Notice/HandleRequest?noticeId=71&amp;pId=13">Hankintayksikkö / Kaluston puitejärjestely</a></td>
	<td><span class="correction" style="color:Red">HANKINTAA KORJATAAN</span> Dynaaminen järjestelmä kalustolle</td>
	<td>30.9.2024 16.45</td>
</tr>
</table>
<table id="noticeGrid">
<tr><th>Yksikkö</th><th>Tunnus</th><th></th><th>Otsikko</th><th>Tyyppi</th><th>Kuvaus</th><th>Määräaika</th></tr>
<tr>
	<td>Rakennusvirasto</td>
	<td>HEL-2024-001</td>
	<td><img src="/Content/icons/notice_national.png" /><img src="/img/img_eu_icon.gif" /></td>
	<td><a href="/Notice/HandleRequest?noticeId=55&amp;pId=13">Rakennusvirasto / Katujen talvikunnossapito</a></td>
	<td><span>Hankintailmoitus</span><span>Avoin menettely</span></td>
	<td>Talvikunnossapito kaudelle 2024-2025</td>
	<td>15.10.2024 12.00</td>
</tr>
<tr>
	<td>Sosiaalitoimi</td>
	<td>HEL-2024-002</td>
	<td></td>
	<td><a href="/Notice/HandleRequest?noticeId=56&amp;pId=13">Sosiaalitoimi / Ateriapalvelut</a></td>
	<td><span>Ennakkoilmoitus</span></td>
	<td>Ateriapalveluiden ennakkotieto</td>
	<td></td>
</tr>
</table>
</body></html>`

const processingPageFixture = `<html><head><script>
var portalConfig = { culture: "fi-FI", version: 3 };
</script></head><body>
<div id="noticeFlags"><img src="/Content/icons/notice_national.png" /><img src="/img/img_eu_icon.gif" /></div>
<div id="noticeTypes"><span>Hankintailmoitus</span><span>Avoin menettely</span></div>
</body></html>`

const detailsPageFixture = `<html><body>
<span id="unitName">Rakennusvirasto</span>
<span id="customId">HEL-2024-001</span>
<span id="noticeTitle">Rakennusvirasto / Katujen talvikunnossapito</span>
<span id="authorityType">Kunta tai kuntayhtymä</span>
<span id="category">Palvelut</span>
<span id="shortDescription">Talvikunnossapito kaudelle 2024-2025</span>
<div id="description"><p>Pitkä kuvaus hankinnasta.</p></div>
<span id="publishedDate">1.9.2024 10.00</span>
<span id="deadlineDate">15.10.2024 12.00 (UTC+03:00 Helsinki)</span>
</body></html>`

// a notice with no long description and no deadline set
const detailsSparseFixture = `<html><body>
<span id="unitName">Rakennusvirasto</span>
<span id="customId">HEL-2024-001</span>
<span id="noticeTitle">Rakennusvirasto / Katujen talvikunnossapito</span>
<span id="authorityType">Kunta tai kuntayhtymä</span>
<span id="category">Palvelut</span>
<span id="shortDescription">Talvikunnossapito kaudelle 2024-2025</span>
<span id="publishedDate">1.9.2024 10.00</span>
<span id="deadlineDate"></span>
</body></html>`

const attachmentsPageFixture = `<html><body>
<div id="attachments">
	<a href="/Attachment/Download?fileId=a1b2-c3d4">tarjouspyynto.pdf</a>
	<a href="/Attachment/Download?fileId=e5f6-a7b8">liite1.xlsx</a>
</div>
<div id="externalLinks">
	<a href="https://example.com/docs">Lisätiedot</a>
</div>
</body></html>`

const tendersPageFixture = `<html><body>
<table>
<tr>
	<td>Katujen talvikunnossapito</td>
	<td><a href="/Tender/Modify?pId=13&amp;tarjID=987">Muokkaa tarjousta</a></td>
</tr>
</table>
</body></html>`
